package database

// Config holds configuration for the TransitMaster database connection.
//
// The mapstructure keys line up with the environment variables the
// scheduling team already uses: TRANSITMASTER_DATABASE_SERVER,
// TRANSITMASTER_UID, TRANSITMASTER_PWD and TRANSITMASTER_DATABASE.
type Config struct {
	// Host is the SQL Server host.
	Host string `mapstructure:"database_server" default:""`
	// Port is the SQL Server port.
	Port int `mapstructure:"port" default:"1433"`
	// User is the database user.
	User string `mapstructure:"uid" default:""`
	// Password is the database password.
	Password string `mapstructure:"pwd" default:""`
	// Name is the database name.
	Name string `mapstructure:"database" default:"TMMain"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
