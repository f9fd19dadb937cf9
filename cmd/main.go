package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"reflect"
	"syscall"

	"github.com/aukilabs/ahgrid/featureflag"
	"github.com/aukilabs/ahgrid/grid"
	ahttp "github.com/aukilabs/ahgrid/http"
	"github.com/aukilabs/ahgrid/simulation"
	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/go-tooling/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
)

var (
	// The gridload version number. Set at build.
	version = "v0.1.0"

	infoGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name:        "gridload_info",
		Help:        "Gridload information.",
		ConstLabels: prometheus.Labels{"version": version},
	})
)

// This will effectively disable obfuscation of the config struct. Without it, the keys would get obfuscated causing the cli package to generate garbled command-line options.
// https://github.com/burrowers/garble/issues/403
var _ = reflect.TypeOf(config{})

type config struct {
	AdminAddr     string   `cli:""        env:"GRIDLOAD_ADMIN_ADDR"      help:"Admin listening address (metrics, pprof). Empty disables the admin server."`
	LogLevel      string   `cli:""        env:"GRIDLOAD_LOG_LEVEL"       help:"Log level (debug|info|warning|error)."`
	LogIndent     bool     `cli:""        env:"GRIDLOAD_LOG_INDENT"      help:"Indent logs."`
	Objects       int      `cli:""        env:"GRIDLOAD_OBJECTS"         help:"The number of objects to insert."`
	WorldExtent   int      `cli:""        env:"GRIDLOAD_WORLD_EXTENT"    help:"Objects are placed in [-extent, extent] on both axes."`
	MaxObjectSize int      `cli:""        env:"GRIDLOAD_MAX_OBJECT_SIZE" help:"The maximum object extent."`
	MinScale      int      `cli:""        env:"GRIDLOAD_MIN_SCALE"       help:"The minimum cell scale of the grid."`
	PointQueries  int      `cli:""        env:"GRIDLOAD_POINT_QUERIES"   help:"The number of point queries to run."`
	RadiusQueries int      `cli:""        env:"GRIDLOAD_RADIUS_QUERIES"  help:"The number of radius queries to run."`
	QueryRadius   int      `cli:""        env:"GRIDLOAD_QUERY_RADIUS"    help:"The radius used by radius queries."`
	Seed          int64    `cli:""        env:"GRIDLOAD_SEED"            help:"The workload random seed."`
	FeatureFlags  []string `cli:",hidden" env:"GRIDLOAD_FEATURE_FLAGS"   help:"Comma separated feature flags."`
	Version       bool     `cli:""        env:"-"                        help:"Show version."`
	Help          bool     `cli:""        env:"-"                        help:"Show help."`
}

func main() {
	conf := config{
		AdminAddr:     ":18190",
		LogLevel:      logs.InfoLevel.String(),
		Objects:       100_000,
		WorldExtent:   1_000_000,
		MaxObjectSize: 256,
		MinScale:      1,
		PointQueries:  10_000,
		RadiusQueries: 1_000,
		QueryRadius:   1_000,
		Seed:          1,
	}

	// set the information gauge to 1, useful for SUM query
	infoGauge.Set(1)

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Runs a synthetic workload against an adaptive hash grid.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	errors.Encoder = json.Marshal

	if conf.AdminAddr != "" {
		var admin http.ServeMux
		admin.Handle("/metrics", promhttp.Handler())
		admin.HandleFunc("/health", ahttp.HandleHealthCheck)
		admin.HandleFunc("/version", ahttp.HandleVersion(version))
		admin.HandleFunc("/debug/pprof/", pprof.Index)
		admin.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		admin.HandleFunc("/debug/pprof/profile", pprof.Profile)
		admin.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		admin.HandleFunc("/debug/pprof/trace", pprof.Trace)
		admin.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))
		admin.Handle("/debug/pprof/heap", pprof.Handler("heap"))

		go ahttp.ListenAndServe(ctx, &http.Server{
			Addr: conf.AdminAddr,
			Handler: metrics.HTTPHandler(&admin,
				ahttp.MetricsPathFormatter),
		})
	}

	logs.WithTag("version", version).
		WithTag("log_level", conf.LogLevel).
		WithTag("min_scale", conf.MinScale).
		Info("starting gridload")

	index := grid.GridWithMetrics[simulation.Entity](
		grid.New[simulation.Entity](grid.WithMinScale(int32(conf.MinScale))),
		"gridload",
	)

	report, err := simulation.Run(ctx, index, simulation.Options{
		ObjectCount:   conf.Objects,
		WorldExtent:   int32(conf.WorldExtent),
		MaxObjectSize: int32(conf.MaxObjectSize),
		PointQueries:  conf.PointQueries,
		RadiusQueries: conf.RadiusQueries,
		QueryRadius:   int32(conf.QueryRadius),
		Seed:          conf.Seed,
		FeatureFlags:  featureflag.New(conf.FeatureFlags),
	})
	if err != nil {
		logs.Fatal(errors.New("running workload failed").Wrap(err))
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logs.Fatal(errors.New("encoding report failed").Wrap(err))
	}
	fmt.Println(string(out))
}
