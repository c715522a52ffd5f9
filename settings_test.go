package mobilestore

import (
	"errors"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

var yamlExample = []byte(`
log:
  level: debug
downloader:
  rps: 2
database:
  name: mobilestore
  user: worker
  password: hunter2
  host: db.internal
  port: 5433
storage:
  env: PRODUCTION
  mediaDir: /srv/media
  bucket: phone-images
  endpoint: storage.internal:9000
  accessKey: AKIA000
  secretKey: sk000
  useSSL: true
`)

// newTestConfig fresh configuration detached from the package singleton
func newTestConfig(fs afero.Fs) *Configuration {
	v := viper.New()
	v.SetFs(fs)
	v.SetEnvPrefix("MOBILESTORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 5432)
	v.SetDefault("storage.env", "TESTING")
	v.SetDefault("storage.mediaDir", "media")
	v.SetDefault("downloader.rps", 4)
	return &Configuration{v}
}

func TestConfigFromYaml(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/settings", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := afero.WriteFile(fs, "/settings/settings.yaml", yamlExample, 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	convey.Convey("test the yaml sections are read", t, func() {
		config := newTestConfig(fs)
		convey.So(config.load("/settings"), convey.ShouldBeTrue)

		database, err := config.Database()
		convey.So(err, convey.ShouldBeNil)
		convey.So(database.Name, convey.ShouldEqual, "mobilestore")
		convey.So(database.User, convey.ShouldEqual, "worker")
		convey.So(database.Password, convey.ShouldEqual, "hunter2")
		convey.So(database.Host, convey.ShouldEqual, "db.internal")
		convey.So(database.Port, convey.ShouldEqual, 5433)

		storage, err := config.Storage()
		convey.So(err, convey.ShouldBeNil)
		convey.So(storage.Env, convey.ShouldEqual, EnvProduction)
		convey.So(storage.MediaDir, convey.ShouldEqual, "/srv/media")
		convey.So(storage.Bucket, convey.ShouldEqual, "phone-images")
		convey.So(storage.UseSSL, convey.ShouldBeTrue)

		value, err := config.GetValue("downloader.rps")
		convey.So(err, convey.ShouldBeNil)
		convey.So(value, convey.ShouldEqual, 2)
	})
}

func TestConfigDefaults(t *testing.T) {
	convey.Convey("test defaults apply without a settings file", t, func() {
		config := newTestConfig(afero.NewMemMapFs())
		convey.So(config.load("/nowhere"), convey.ShouldBeFalse)

		storage, err := config.Storage()
		convey.So(err, convey.ShouldBeNil)
		convey.So(storage.Env, convey.ShouldEqual, "TESTING")
		convey.So(storage.MediaDir, convey.ShouldEqual, "media")
		convey.So(config.GetInt("downloader.rps"), convey.ShouldEqual, 4)
	})
}

func TestConfigMissingCredentials(t *testing.T) {
	convey.Convey("test database credentials are required", t, func() {
		config := newTestConfig(afero.NewMemMapFs())
		_, err := config.Database()
		convey.So(errors.Is(err, ErrMissingCredentials), convey.ShouldBeTrue)
	})
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("MOBILESTORE_DATABASE_NAME", "envdb")
	t.Setenv("MOBILESTORE_DATABASE_USER", "envuser")

	convey.Convey("test env vars override the file and the defaults", t, func() {
		config := newTestConfig(afero.NewMemMapFs())
		database, err := config.Database()
		convey.So(err, convey.ShouldBeNil)
		convey.So(database.Name, convey.ShouldEqual, "envdb")
		convey.So(database.User, convey.ShouldEqual, "envuser")
		convey.So(database.Host, convey.ShouldEqual, "127.0.0.1")
	})
}
