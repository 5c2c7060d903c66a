package server

// Данный сервер просто объединяет специфичные HTTP сервера, отвечающие за обработку конкретных сущностей
type Server struct {
	WineServer
	CatalogServer
}

func NewServer(
	wineServer WineServer,
	catalogServer CatalogServer,
) Server {
	return Server{
		WineServer:    wineServer,
		CatalogServer: catalogServer,
	}
}
