package config

type Rakuten struct {
	ApplicationID string `env:"RAKUTEN_APPLICATION_ID,required" json:"-"`
	AccessKey     string `env:"RAKUTEN_ACCESS_KEY" json:"-"`
	AffiliateID   string `env:"RAKUTEN_AFFILIATE_ID" json:"-"`
	Origin        string `env:"RAKUTEN_ORIGIN" envDefault:"https://webservice.rakuten.co.jp"`
	Referer       string `env:"RAKUTEN_REFERER" envDefault:"https://webservice.rakuten.co.jp/"`
}
