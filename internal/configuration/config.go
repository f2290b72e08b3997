package configuration

import "github.com/adampresley/configinator"

type Config struct {
	AwsEndpointUrl             string `flag:"awsep" env:"AWS_ENDPOINT_URL" default:"http://localhost:4566" description:"AWS endpoint URL"`
	AwsRegion                  string `flag:"awsregion" env:"AWS_REGION" default:"us-central-1" description:"AWS region"`
	AwsAccessKeyId             string `flag:"awsaccesskeyid" env:"AWS_ACCESS_KEY_ID" default:"" description:"AWS access key ID"`
	AwsSecretAccessKey         string `flag:"awssecretaccesskey" env:"AWS_SECRET_ACCESS_KEY" default:"" description:"AWS secret access key"`
	AwsBucket                  string `flag:"awsbucket" env:"AWS_BUCKET" default:"avestudio-thumbnails" description:"S3 bucket used when THUMBNAIL_STORE is 's3'"`
	CookieSecret               string `flag:"cookiesecret" env:"COOKIE_SECRET" default:"password" description:"Secret for encoding cookies"`
	DriveBaseURL               string `flag:"drivebase" env:"DRIVE_BASE_URL" default:"https://drive.google.com" description:"Base URL used to build direct Google Drive links"`
	DSN                        string `flag:"dsn" env:"DSN" default:"file:./data/studio.db?_pragma=foreign_keys(1)" description:"Data source name"`
	EmailApiKey                string `flag:"emailapikey" env:"EMAIL_API_KEY" default:"" description:"API key for sending emails"`
	EmailFromAddress           string `flag:"emailfrom" env:"EMAIL_FROM_ADDRESS" default:"noreply@avestudio.ro" description:"Sender address for client emails"`
	EmailFromName              string `flag:"emailfromname" env:"EMAIL_FROM_NAME" default:"Ave Studio" description:"Sender name for client emails"`
	FrontendURL                string `flag:"frontendurl" env:"FRONTEND_URL" default:"http://localhost:3000" description:"Public frontend URL. QR codes point here"`
	GoogleDriveApiKey          string `flag:"driveapikey" env:"GOOGLE_DRIVE_API_KEY" default:"" description:"Google Drive API key for public folders"`
	GoogleDriveCredentialsPath string `flag:"drivecredentials" env:"GOOGLE_DRIVE_CREDENTIALS_PATH" default:"" description:"Path to a Google service account JSON file"`
	Host                       string `flag:"host" env:"HOST" default:"localhost:8000" description:"The address and port to bind the HTTP server to"`
	LogLevel                   string `flag:"loglevel" env:"LOG_LEVEL" default:"debug" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
	MaxCacheWorkers            int    `flag:"mcc" env:"MAX_CACHE_WORKERS" default:"8" description:"Maximum number of concurrent thumbnail workers"`
	MediaRoot                  string `flag:"mediaroot" env:"MEDIA_ROOT" default:"./media" description:"Directory for uploaded images, QR codes and disk thumbnails"`
	MediaURL                   string `flag:"mediaurl" env:"MEDIA_URL" default:"/media/" description:"URL prefix the media root is served under"`
	PortfolioPageSize          int    `flag:"pagesize" env:"PORTFOLIO_PAGE_SIZE" default:"12" description:"Default number of portfolio images per page"`
	SiteURL                    string `flag:"siteurl" env:"SITE_URL" default:"https://avestudio.ro" description:"Public site URL used in the sitemap"`
	ThumbnailStore             string `flag:"thumbstore" env:"THUMBNAIL_STORE" default:"disk" description:"Where thumbnails are cached. Valid values are 'disk' and 's3'"`
	ThumbnailWarmMinutes       int    `flag:"thumbwarm" env:"THUMBNAIL_WARM_MINUTES" default:"0" description:"Minutes between thumbnail warm runs. 0 disables the warmer"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}
