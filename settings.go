// MIT License

// Copyright (c) 2023 anagilda

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package mobilestore

import (
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// EnvProduction value of storage.env that switches the image store to
// bucket uploads
const EnvProduction = "PRODUCTION"

// DatabaseConfig catalog connection parameters, loaded from the database
// section of settings.yaml or from MOBILESTORE_DATABASE_* env vars
type DatabaseConfig struct {
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
}

// StorageConfig image storage parameters
// Env toggles the bucket upload, it is not a pipeline decision
type StorageConfig struct {
	Env       string `mapstructure:"env"`
	MediaDir  string `mapstructure:"mediaDir"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"accessKey"`
	SecretKey string `mapstructure:"secretKey"`
	UseSSL    bool   `mapstructure:"useSSL"`
}

type Settings interface {
	// GetValue get one parameter by key
	GetValue(key string) (interface{}, error)
}

type Configuration struct {
	*viper.Viper
}

var onceConfig sync.Once
var Config *Configuration = nil

func newWorkerConfig() {
	onceConfig.Do(func() {
		v := viper.New()
		v.SetEnvPrefix("MOBILESTORE")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
		v.SetDefault("database.host", "127.0.0.1")
		v.SetDefault("database.port", 5432)
		v.SetDefault("storage.env", "TESTING")
		v.SetDefault("storage.mediaDir", "media")
		v.SetDefault("downloader.rps", 4)
		Config = &Configuration{v}
	})
}

func (c *Configuration) GetValue(key string) (interface{}, error) {
	value := c.Get(key)
	return value, nil
}

func (c *Configuration) load(dir string) bool {
	c.AddConfigPath(dir)
	c.SetConfigName("settings")
	c.SetConfigType("yaml")
	readErr := c.ReadInConfig()
	return readErr == nil
}

// Database read the database section
// Missing name or user is a startup fatal error, nothing can be persisted
// without catalog credentials
// Values are read key by key so that MOBILESTORE_DATABASE_* env vars
// override the yaml file
func (c *Configuration) Database() (*DatabaseConfig, error) {
	cfg := &DatabaseConfig{
		Name:     c.GetString("database.name"),
		User:     c.GetString("database.user"),
		Password: c.GetString("database.password"),
		Host:     c.GetString("database.host"),
		Port:     c.GetInt("database.port"),
	}
	if strings.TrimSpace(cfg.Name) == "" || strings.TrimSpace(cfg.User) == "" {
		return nil, ErrMissingCredentials
	}
	return cfg, nil
}

// Storage read the storage section
func (c *Configuration) Storage() (*StorageConfig, error) {
	cfg := &StorageConfig{
		Env:       c.GetString("storage.env"),
		MediaDir:  c.GetString("storage.mediaDir"),
		Bucket:    c.GetString("storage.bucket"),
		Endpoint:  c.GetString("storage.endpoint"),
		AccessKey: c.GetString("storage.accessKey"),
		SecretKey: c.GetString("storage.secretKey"),
		UseSSL:    c.GetBool("storage.useSSL"),
	}
	return cfg, nil
}

func initSettings() {
	newWorkerConfig()
	wd, _ := os.Getwd()
	Config.load(wd)
}
