package domain

import "fmt"

// ProfileType names the SQL driver a connection profile uses.
type ProfileType string

const (
	ProfileTypeMySQL      ProfileType = "mysql"
	ProfileTypeSnowflake  ProfileType = "snowflake"
	ProfileTypeDatabricks ProfileType = "databricks"
)

// ConfigProfile is one named store connection from the profile file.
type ConfigProfile struct {
	Name string
	Type ProfileType
}

func (c ConfigProfile) String() string {
	return fmt.Sprintf("%s:%s", c.Type, c.Name)
}
