package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"modhome/internal/catalog"
	"modhome/internal/dedupe"
	"modhome/pkg/database"
)

type Config struct {
	// pipeline
	InputPath      string
	OutputPaths    []string
	Threshold      float64
	DedupePolicy   string // "price" or "first"
	PriceCeiling   int64
	FeatureCap     int
	Profile        string // category profile; deliberately no default
	ProfilesFile   string
	VendorPrefixes []string

	// storefront
	HTTPAddr      string
	GRPCAddr      string
	CatalogPath   string
	CatalogSource string // "json" or "sqlite"
	DBPath        string
	CORSOrigins   []string
	Debug         bool

	// scraping
	ScrapePages []string
	MirrorURL   string
	MirrorAddr  string
	MirrorFile  string
}

// Load reads .env (if present) and MODHOME_* environment variables.
func Load() Config {
	// a missing .env is fine
	_ = godotenv.Load()

	return Config{
		InputPath: getEnv("MODHOME_INPUT", "data/raw_products.json"),
		OutputPaths: getList("MODHOME_OUTPUTS", []string{
			"data/products.json",
			"public/data/products.json",
		}),
		Threshold:      getFloat("MODHOME_THRESHOLD", dedupe.DefaultThreshold),
		DedupePolicy:   getEnv("MODHOME_DEDUPE_POLICY", "price"),
		PriceCeiling:   int64(getInt("MODHOME_PRICE_CEILING", dedupe.DefaultPriceCeiling)),
		FeatureCap:     getInt("MODHOME_FEATURE_CAP", catalog.DefaultFeatureCap),
		Profile:        os.Getenv("MODHOME_CATEGORY_PROFILE"),
		ProfilesFile:   os.Getenv("MODHOME_PROFILES_FILE"),
		VendorPrefixes: getList("MODHOME_VENDOR_PREFIXES", catalog.DefaultVendorPrefixes),

		HTTPAddr:      getEnv("MODHOME_HTTP_ADDR", ":8080"),
		GRPCAddr:      getEnv("MODHOME_GRPC_ADDR", ":9090"),
		CatalogPath:   getEnv("MODHOME_CATALOG", "public/data/products.json"),
		CatalogSource: getEnv("MODHOME_CATALOG_SOURCE", "json"),
		DBPath:        database.DefaultConfig().Path,
		CORSOrigins:   getList("MODHOME_CORS_ORIGINS", []string{"*"}),
		Debug:         getBool("MODHOME_DEBUG", false),

		ScrapePages: getList("MODHOME_SCRAPE_PAGES", nil),
		MirrorURL:   os.Getenv("MODHOME_MIRROR_URL"),
		MirrorAddr:  getEnv("MODHOME_MIRROR_ADDR", ":9000"),
		MirrorFile:  getEnv("MODHOME_MIRROR_FILE", "data/raw_products.json"),
	}
}

func getEnv(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

func getList(k string, d []string) []string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return append([]string(nil), d...)
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// numeric values that fail to parse fall back to the default
func getFloat(k string, d float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(k)), 64)
	if err != nil {
		return d
	}
	return f
}

func getInt(k string, d int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return d
	}
	return n
}

func getBool(k string, d bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return d
	}
	return b
}
