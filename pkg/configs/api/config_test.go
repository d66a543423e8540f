package api_test

import (
	"testing"
	"time"

	"github.com/rpatil524/mlrun/pkg/configs/api"
	"github.com/rpatil524/mlrun/pkg/utils/try"
)

func TestUnmarshal(t *testing.T) {
	t.Run("it reads a full config", func(t *testing.T) {
		conf := try.To(api.Unmarshal([]byte(`
port: "9090"
dbURI: "postgres://mlrun:secret@db:5432/mlrun"
pagination:
    defaultPageSize: 50
    pageLimit: 5000
    pageSizeLimit: 100
    cache:
        ttl: 30m
        maxSize: 500
        monitorInterval: 15
`))).OrFatal(t)

		if conf.ServerPort != "9090" {
			t.Errorf("unmatch: port: (actual, expected) = (%s, 9090)", conf.ServerPort)
		}
		if conf.DBURI != "postgres://mlrun:secret@db:5432/mlrun" {
			t.Errorf("unmatch: dbURI: %s", conf.DBURI)
		}

		p := conf.Pagination
		if p.DefaultPageSize != 50 || p.PageLimit != 5000 || p.PageSizeLimit != 100 {
			t.Errorf("unmatch: pagination: %+v", p)
		}
		if p.Cache.TTL.Duration() != 30*time.Minute {
			t.Errorf("unmatch: ttl: %s", p.Cache.TTL.Duration())
		}
		if p.Cache.MaxSize != 500 {
			t.Errorf("unmatch: maxSize: %d", p.Cache.MaxSize)
		}
		// bare number = seconds
		if p.Cache.MonitorInterval.Duration() != 15*time.Second {
			t.Errorf("unmatch: monitorInterval: %s", p.Cache.MonitorInterval.Duration())
		}
	})

	t.Run("it fills defaults for everything omitted", func(t *testing.T) {
		conf := try.To(api.Unmarshal([]byte(`
dbURI: "postgres://localhost:5432/mlrun"
`))).OrFatal(t)

		if conf.ServerPort != "8080" {
			t.Errorf("unmatch: port: (actual, expected) = (%s, 8080)", conf.ServerPort)
		}
		p := conf.Pagination
		if p.DefaultPageSize != 20 || p.PageLimit != 1000000 || p.PageSizeLimit != 200 {
			t.Errorf("unmatch: pagination defaults: %+v", p)
		}
		if p.Cache.TTL.Duration() != time.Hour ||
			p.Cache.MaxSize != 10000 ||
			p.Cache.MonitorInterval.Duration() != time.Minute {
			t.Errorf("unmatch: cache defaults: %+v", p.Cache)
		}
	})

	for name, conf := range map[string]string{
		"the default page size is negative": `
pagination:
    defaultPageSize: -1
`,
		"the page size limit is under the default page size": `
pagination:
    defaultPageSize: 100
    pageSizeLimit: 50
`,
		"the cache ttl is negative": `
pagination:
    cache:
        ttl: -1h
`,
		"the duration is not parsable": `
pagination:
    cache:
        ttl: someday
`,
	} {
		t.Run("it rejects a config where "+name, func(t *testing.T) {
			if _, err := api.Unmarshal([]byte(conf)); err == nil {
				t.Error("expected error does not occur")
			}
		})
	}
}
