package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/fib-lab/opendrive-importer/catalogue"
	"github.com/fib-lab/opendrive-importer/config"
	"github.com/fib-lab/opendrive-importer/geometry"
	"github.com/fib-lab/opendrive-importer/importer"
	"github.com/fib-lab/opendrive-importer/model"
	"github.com/fib-lab/opendrive-importer/warn"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var (
	// roadsPath is a JSON fixture standing in for the XML event source:
	// parsing the OpenDRIVE grammar itself is out of this core's scope.
	roadsPath = flag.String("roads", "", "path to a JSON-encoded road table")
	configPath = flag.String("config", "", "config file path")
	// cataloguePath points at the per-lane-type catalogue of defaults.
	cataloguePath = flag.String("catalogue", "", "lane type catalogue file path")
	outPath       = flag.String("out", "graph.json", "output graph JSON path")

	logLevels = map[string]logrus.Level{
		"trace": logrus.TraceLevel,
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"off":   logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "log level (one of: trace debug info warn error off)")

	log = logrus.WithField("module", "opendrive-import")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}

	if *roadsPath == "" {
		log.Panic("-roads must be specified")
	}

	var c config.Config
	if *configPath != "" {
		raw, err := os.ReadFile(*configPath)
		if err != nil {
			log.Panicf("config file load err: %v", err)
		}
		if err := yaml.UnmarshalStrict(raw, &c); err != nil {
			log.Panicf("config file parse err: %v", err)
		}
	}
	log.Infof("%+v", c)
	rc := config.NewRuntimeConfig(c)

	var cat *catalogue.Catalogue
	if *cataloguePath != "" {
		var err error
		cat, err = catalogue.Load(*cataloguePath)
		if err != nil {
			log.Panicf("catalogue load err: %v", err)
		}
	} else {
		cat = catalogue.New(nil)
	}

	roadsRaw, err := os.ReadFile(*roadsPath)
	if err != nil {
		log.Panicf("road table load err: %v", err)
	}
	var roads map[string]*model.Road
	if err := json.Unmarshal(roadsRaw, &roads); err != nil {
		log.Panicf("road table parse err: %v", err)
	}
	log.Infof("loaded %d roads", len(roads))

	sink := warn.NewLogrusSink("opendrive-import")
	imp := importer.New(rc, cat, geometry.IdentityProjector{}, sink)
	graph, err := imp.Run(roads)
	if err != nil {
		log.Panicf("import failed: %v", err)
	}

	out, err := json.MarshalIndent(graph, "", "  ")
	if err != nil {
		log.Panicf("graph marshal err: %v", err)
	}
	if err := os.WriteFile(*outPath, out, 0o644); err != nil {
		log.Panicf("graph write err: %v", err)
	}
	log.Infof("wrote %d nodes, %d edges, %d connections to %s",
		len(graph.Nodes), len(graph.Edges), len(graph.Connections), *outPath)
}
