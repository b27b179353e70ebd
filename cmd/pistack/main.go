/*
 * main.go, part of pistack.
 *
 * Copyright 2025 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//pistack compares stacked trimer geometries across variants and
//environments. It reads a JSON run configuration listing, per environment,
//the variant XYZ files and the 1-based atom-index specifications of the
//top/middle/bottom cores, analyzes every (environment, variant) pair, and
//writes per-environment CSV tables of plane metrics, COM summaries and
//deltas against a baseline variant. A failure in one variant is logged and
//does not stop the rest of the batch.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rmera/pistack"
	"github.com/rmera/pistack/report"
)

type variantConfig struct {
	Name   string `json:"name"`
	File   string `json:"file"`
	Top    string `json:"top"`
	Middle string `json:"middle"`
	Bottom string `json:"bottom"`
}

type envConfig struct {
	Name     string          `json:"name"`
	Variants []variantConfig `json:"variants"`
}

type runConfig struct {
	Baseline     string      `json:"baseline"`
	Environments []envConfig `json:"environments"`
}

func readConfig(name string) (*runConfig, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	conf := new(runConfig)
	if err := json.NewDecoder(f).Decode(conf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	if len(conf.Environments) == 0 {
		return nil, fmt.Errorf("%s: no environments defined", name)
	}
	return conf, nil
}

//assemble builds the Assembly for one variant, from its XYZ file and index
//specifications.
func assemble(env string, v variantConfig) (*pistack.Assembly, error) {
	set, err := pistack.XYZRead(v.File)
	if err != nil {
		return nil, err
	}
	subunits := make([]*pistack.SubunitCore, 3)
	for i, spec := range []struct{ name, idx string }{{"top", v.Top}, {"middle", v.Middle}, {"bottom", v.Bottom}} {
		indexes, err := pistack.ParseIndexSpec(spec.idx)
		if err != nil {
			return nil, err
		}
		subunits[i], err = pistack.NewSubunit(spec.name, set, indexes)
		if err != nil {
			return nil, err
		}
	}
	return &pistack.Assembly{
		Environment: env,
		Variant:     v.Name,
		Top:         subunits[0],
		Middle:      subunits[1],
		Bottom:      subunits[2],
	}, nil
}

func main() {
	confname := flag.String("config", "pistack.json", "JSON run configuration")
	outdir := flag.String("o", "", "output directory (default: a date-stamped one in the working directory)")
	baseline := flag.String("baseline", "", "baseline variant for deltas (overrides the configuration)")
	cpus := flag.Int("cpus", 0, "goroutines for the analysis (default: all CPUs)")
	compress := flag.String("compress", "", "compress output tables: \"gz\" or \"zst\"")
	weighted := flag.Bool("weighted", false, "mass-weight the plane-fit centroids (the COM summary is always mass-weighted)")
	flag.Parse()

	conf, err := readConfig(*confname)
	if err != nil {
		log.Fatalf("pistack: %v", err)
	}
	base := conf.Baseline
	if *baseline != "" {
		base = *baseline
	}
	if base == "" {
		log.Fatal("pistack: no baseline variant given (set it in the configuration or with -baseline)")
	}
	dir := *outdir
	if dir == "" {
		dir = time.Now().Format("January_02_2006")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("pistack: %v", err)
	}
	suffix := ""
	if *compress != "" {
		suffix = "." + *compress
	}

	o := pistack.DefaultOptions()
	if *cpus > 0 {
		o.Cpus(*cpus)
	}
	o.Fit().Weighted(*weighted)

	allmetrics := make(map[string]*pistack.AssemblyMetrics)
	failed := 0
	for _, env := range conf.Environments {
		assemblies := make([]*pistack.Assembly, 0, len(env.Variants))
		order := make([]string, 0, len(env.Variants))
		for _, v := range env.Variants {
			A, err := assemble(env.Name, v)
			if err != nil {
				log.Printf("pistack: %s/%s: %v", env.Name, v.Name, err)
				failed++
				continue
			}
			assemblies = append(assemblies, A)
			order = append(order, v.Name)
		}
		metrics, failures := pistack.AnalyzeAll(assemblies, o)
		keys := make([]string, 0, len(failures))
		for k := range failures {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			log.Printf("pistack: %s: %v", k, failures[k])
			failed++
		}
		//re-key by variant for the per-environment tables and deltas
		byVariant := make(map[string]*pistack.AssemblyMetrics, len(metrics))
		for _, m := range metrics {
			byVariant[m.Variant] = m
			allmetrics[m.Environment+"/"+m.Variant] = m
		}
		prefix := filepath.Join(dir, env.Name)
		if err := report.WritePlaneCSV(prefix+"_plane_metrics.csv"+suffix, order, byVariant); err != nil {
			log.Printf("pistack: %v", err)
		}
		if err := report.WriteCOMCSV(prefix+"_com_summary.csv"+suffix, order, byVariant); err != nil {
			log.Printf("pistack: %v", err)
		}
		if err := report.WriteAllCSV(prefix+"_all_metrics.csv"+suffix, order, byVariant); err != nil {
			log.Printf("pistack: %v", err)
		}
		deltas, err := pistack.Deltas(byVariant, base)
		if err != nil {
			//previously computed metrics stay valid, only the deltas are lost
			log.Printf("pistack: %s: %v", env.Name, err)
			continue
		}
		name := fmt.Sprintf("%s_deltas_vs_%s.csv%s", prefix, base, suffix)
		if err := report.WriteDeltaCSV(name, order, deltas); err != nil {
			log.Printf("pistack: %v", err)
		}
	}
	if err := report.WriteJSON(filepath.Join(dir, "metrics.json"+suffix), allmetrics); err != nil {
		log.Printf("pistack: %v", err)
	}
	log.Printf("pistack: done, %d record(s) written to %s, %d failure(s)", len(allmetrics), dir, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
