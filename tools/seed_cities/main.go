/*
Seed the city store from a plain text file, one name per line.
Blank lines and lines starting with # are skipped.

  go run ./tools/seed_cities -names tools/seed_cities/sample_cities.txt
  go run ./tools/seed_cities -backend mysql \
    -dsn "user:secret@tcp(127.0.0.1:3306)/weather?parseTime=true" \
    -names tools/seed_cities/sample_cities.txt
*/

// tools/seed_cities/main.go
package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"weather-xml/internal/config"
	mysqlrepo "weather-xml/internal/repositories/mysql"
	"weather-xml/internal/repositories/xmlfile"
	"weather-xml/internal/services"
	"weather-xml/pkg/db"
)

var (
	namesPath  = flag.String("names", "tools/seed_cities/sample_cities.txt", "file with one city name per line")
	backend    = flag.String("backend", config.BackendXML, "store backend (xml|mysql)")
	citiesFile = flag.String("cities", "cities.xml", "XML store path (xml backend)")
	dsn        = flag.String("dsn", "", "MySQL DSN (mysql backend)")
	skipDupes  = flag.Bool("skip-existing", true, "skip names already in the store")
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	flag.Parse()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var repo services.CityRepo
	switch *backend {
	case config.BackendXML:
		repo = xmlfile.NewCitiesRepo(*citiesFile)
	case config.BackendMySQL:
		conn, err := db.NewMySQL(*dsn)
		must(err)
		defer conn.Close()
		must(db.WaitReady(ctx, conn, 5, 2*time.Second))
		repo = &mysqlrepo.CitiesRepo{DB: conn}
	default:
		log.Fatalf("unsupported backend: %s", *backend)
	}
	must(repo.EnsureInitialized(ctx))

	f, err := os.Open(*namesPath)
	must(err)
	defer f.Close()

	names, err := readNames(f)
	must(err)

	svc := services.NewCityService(repo)
	existing := map[string]bool{}
	if *skipDupes {
		list, err := svc.List(ctx)
		must(err)
		for _, c := range list {
			existing[strings.ToLower(c.Name)] = true
		}
	}

	added := 0
	for _, n := range names {
		if existing[strings.ToLower(n)] {
			continue
		}
		if _, err := svc.Create(ctx, n); err != nil {
			log.Fatalf("create %q: %v", n, err)
		}
		existing[strings.ToLower(n)] = true
		added++
	}
	log.Printf("seeded %d cities (%d skipped)", added, len(names)-added)
}

func readNames(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}
