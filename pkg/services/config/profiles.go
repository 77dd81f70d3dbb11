package config

import (
	"context"
	"fmt"

	"github.com/de-tools/biz-atlas/pkg/models/domain"
	"github.com/de-tools/biz-atlas/pkg/store/sqlstore"
	"gopkg.in/ini.v1"
)

// Registry resolves named store connection profiles from an ini file.
// Each section declares `type` (mysql, snowflake, databricks) and `dsn`;
// `max_open_conns` is optional.
type Registry interface {
	GetProfiles(ctx context.Context) ([]domain.ConfigProfile, error)
	GetSettings(ctx context.Context, profile string) (*sqlstore.Settings, error)
}

var knownTypes = map[string]domain.ProfileType{
	string(domain.ProfileTypeMySQL):      domain.ProfileTypeMySQL,
	string(domain.ProfileTypeSnowflake):  domain.ProfileTypeSnowflake,
	string(domain.ProfileTypeDatabricks): domain.ProfileTypeDatabricks,
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]domain.ConfigProfile, error) {
	var profiles []domain.ConfigProfile
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		profileType, ok := knownTypes[section.Key("type").String()]
		if !ok {
			profileType = domain.ProfileTypeMySQL
		}
		profiles = append(profiles, domain.ConfigProfile{
			Name: section.Name(),
			Type: profileType,
		})
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetSettings(_ context.Context, profile string) (*sqlstore.Settings, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	driver := section.Key("type").String()
	if _, ok := knownTypes[driver]; !ok {
		driver = string(domain.ProfileTypeMySQL)
	}
	dsn := section.Key("dsn").String()
	if dsn == "" {
		return nil, fmt.Errorf("profile %s has no dsn", profile)
	}

	return &sqlstore.Settings{
		Driver:       driver,
		DSN:          dsn,
		MaxOpenConns: section.Key("max_open_conns").MustInt(0),
	}, nil
}
