package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/esummer9/mykeyword/server/version"
)

// Profile is the configuration to start main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string `json:"mode" mapstructure:"mode"`
	// Addr is the binding address for server
	Addr string `json:"-" mapstructure:"addr"`
	// Port is the binding port for server
	Port int `json:"-" mapstructure:"port"`
	// Data is the data directory
	Data string `json:"-" mapstructure:"data"`
	// DSN points to where the service stores its own data
	DSN string `json:"-" mapstructure:"dsn"`
	// Version is the current version of server
	Version string `json:"version" mapstructure:"version"`
	// Timezone is the IANA zone used for registration date/time columns
	Timezone string `json:"timezone" mapstructure:"timezone"`
	// UserDict is the flat user dictionary file consumed by the analyzer
	UserDict string `json:"-" mapstructure:"user-dict"`
	// ReprocessSpec is the cron spec of the raw memo reprocessing job, empty disables it
	ReprocessSpec string `json:"-" mapstructure:"reprocess-spec"`

	S3Endpoint  string `json:"-" mapstructure:"s3-endpoint"`
	S3Region    string `json:"-" mapstructure:"s3-region"`
	S3Bucket    string `json:"-" mapstructure:"s3-bucket"`
	S3AccessKey string `json:"-" mapstructure:"s3-access-key"`
	S3SecretKey string `json:"-" mapstructure:"s3-secret-key"`
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// Location resolves Timezone, falling back to the system zone.
func (p *Profile) Location() *time.Location {
	if p.Timezone == "" || p.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// S3Enabled reports whether exports may be uploaded to object storage.
func (p *Profile) S3Enabled() bool {
	return p.S3Bucket != "" && p.S3Region != ""
}

func checkDSN(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		absDir, err := filepath.Abs(filepath.Dir(os.Args[0]) + "/" + dataDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")

	if _, err := os.Stat(dataDir); err != nil {
		return "", fmt.Errorf("unable to access data folder %s, err %w", dataDir, err)
	}

	return dataDir, nil
}

// GetProfile will return a profile for dev or prod.
func GetProfile() (*Profile, error) {
	profile := Profile{}
	err := viper.Unmarshal(&profile)
	if err != nil {
		return nil, err
	}

	if profile.Mode != "demo" && profile.Mode != "dev" && profile.Mode != "prod" {
		profile.Mode = "demo"
	}

	if profile.Mode == "prod" && profile.Data == "" {
		if runtime.GOOS == "windows" {
			profile.Data = filepath.Join(os.Getenv("ProgramData"), "mykeyword")
			if _, err := os.Stat(profile.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(profile.Data, 0770); err != nil {
					fmt.Printf("Failed to create data directory: %s, err: %+v\n", profile.Data, err)
					return nil, err
				}
			}
		} else {
			profile.Data = "/var/opt/mykeyword"
		}
	}

	dataDir, err := checkDSN(profile.Data)
	if err != nil {
		fmt.Printf("Failed to check dsn: %s, err: %+v\n", dataDir, err)
		return nil, err
	}

	profile.Data = dataDir
	profile.DSN = fmt.Sprintf("%s/mykeyword_%s.db", dataDir, profile.Mode)
	if profile.UserDict == "" {
		profile.UserDict = filepath.Join(dataDir, "komoran", "user.dict")
	}
	profile.Version = version.GetCurrentVersion(profile.Mode)

	return &profile, nil
}
