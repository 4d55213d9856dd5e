// Command gencsv writes mock logger dumps for every registered station so
// the ingestion daemon can be exercised without field hardware. It emits the
// same formats the real loggers produce: header-driven AWS files, triplet
// EWS files and fixed-column EWS files.
//
// Usage:
//
//	go run ./cmd/gencsv -out /tmp/hydrology -rows 12
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hydro-telemetry/internal/station"
)

func main() {
	out := flag.String("out", "", "root directory for generated station folders")
	rows := flag.Int("rows", 12, "data rows per file")
	registry := flag.String("stations", "", "optional station registry YAML (defaults to compiled-in)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	stations := station.Defaults()
	if *registry != "" {
		var err error
		stations, err = station.Load(*registry)
		if err != nil {
			log.Fatal(err)
		}
	}

	rng := rand.New(rand.NewSource(*seed))
	now := time.Now()

	for _, st := range stations {
		dir := filepath.Join(*out, filepath.Base(st.Folder))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal(err)
		}

		var content string
		switch st.Family {
		case station.FamilyAWS:
			content = awsFile(rng, now, *rows)
		case station.FamilyEWSTriplet:
			content = tripletFile(rng, st, *rows)
		case station.FamilyEWSColumn:
			content = columnFile(rng, *rows)
		}

		name := fmt.Sprintf("data_%s.csv", now.Format("20060102_150405"))
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %s (%s)\n", path, st.Key())
	}
}

// awsFile renders a header-driven weather dump, including the firmware's
// double-month timestamp encoding in the first column.
func awsFile(rng *rand.Rand, now time.Time, rows int) string {
	var b strings.Builder
	b.WriteString("Date Time,PIR,Avg PIR,wind speed,Wind Direction,Rain,TEMPERATURE,Pressure,Relative Humidity,Bucket Weight,Total Amount of Precipitation\n")
	for i := rows; i > 0; i-- {
		ts := now.Add(-time.Duration(i) * 15 * time.Minute)
		stamp := fmt.Sprintf("01/%02d/%02d/%02d/%04d/ %s",
			ts.Day(), int(ts.Month()), int(ts.Month()), ts.Year(), ts.Format("15:04:05"))
		fmt.Fprintf(&b, "%s,%.1f,%.1f,%.2f,%.0f,%.1f,%.2f,%.2f,%.1f,%.2f,%.1f\n",
			stamp,
			rng.Float64()*900,        // PIR
			rng.Float64()*850,        // Avg PIR
			rng.Float64()*12,         // wind speed
			rng.Float64()*360,        // wind direction
			rng.Float64()*4,          // rain
			-5+rng.Float64()*25,      // temperature
			650+rng.Float64()*40,     // pressure
			20+rng.Float64()*70,      // humidity
			10+rng.Float64()*5,       // bucket weight
			100+rng.Float64()*50,     // precipitation total
		)
	}
	return b.String()
}

// tripletFile renders the index/flag/value gauge format described by the
// station's layout, with auxiliary readings at their absolute offsets.
func tripletFile(rng *rand.Rand, st station.Config, rows int) string {
	layout := st.Triplet
	width := 0
	for _, col := range layout.Aux {
		if col+1 > width {
			width = col + 1
		}
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		parts := make([]string, width)
		parts[layout.SurfaceVelocityCol] = fmt.Sprintf("%.2f", rng.Float64()*3)

		// Pack the pair triplets after the surface velocity column.
		col := layout.SurfaceVelocityCol + 2
		for idx := 1; idx <= 8; idx++ {
			if col+2 >= 31 {
				break
			}
			if hasPairIndex(layout, idx) {
				parts[col] = fmt.Sprintf("%d", idx)
				parts[col+1] = layout.Flag
				parts[col+2] = fmt.Sprintf("%.2f", rng.Float64()*10)
				col += 3
			}
		}
		for _, auxCol := range layout.Aux {
			parts[auxCol] = fmt.Sprintf("%.2f", rng.Float64()*15)
		}
		b.WriteString(strings.Join(parts, ","))
		b.WriteString("\n")
	}
	return b.String()
}

func hasPairIndex(layout *station.TripletLayout, idx int) bool {
	for _, v := range layout.Pairs {
		if v == idx {
			return true
		}
	}
	return false
}

// columnFile renders the fixed-column gauge format: a row code followed by
// readings at columns 1 through 8, with occasional dropout zeros the way the
// real radar misreports.
func columnFile(rng *rand.Rand, rows int) string {
	var b strings.Builder
	for r := 0; r < rows; r++ {
		velocity := rng.Float64() * 3
		if rng.Intn(6) == 0 {
			velocity = 0 // simulated radar dropout
		}
		fmt.Fprintf(&b, "R%03d,%.2f,%.2f,%.1f,%.1f,%.1f,%.2f,%.2f,%.2f\n",
			r,
			velocity,
			rng.Float64()*2.5,     // avg surface velocity
			rng.Float64()*10,      // tilt angle
			rng.Float64()*5,       // unused channel
			5+rng.Float64()*20,    // SNR
			rng.Float64()*400,     // discharge
			3+rng.Float64()*4,     // distance to water
			1+rng.Float64()*3,     // water level
		)
	}
	return b.String()
}
