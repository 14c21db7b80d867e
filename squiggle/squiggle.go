/*
Squiggle simulates the current signal a nanopore sequencer produces
while reading random DNA, decodes the signal back into bases with an
event-based nearest-level decoder, and scores the reconstruction
against the ground truth.

The basic usage looks like this:

	squiggle

, this will simulate and decode 10 reads with the default pore
(k=5, poisson dwell, gaussian noise, random levels).

You can change the pore and the decoder:

	squiggle -n 100 -levels resistor_model -dwell-policy gamma -threshold 0.05

To see all the options run:

	squiggle -h
*/
package main

import (
	"encoding/json"
	"math/rand"
	"os"
	"runtime/pprof"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/op/go-logging"

	"bitbucket.org/mrrlab/squiggle/align"
	"bitbucket.org/mrrlab/squiggle/decode"
	"bitbucket.org/mrrlab/squiggle/pore"
	"bitbucket.org/mrrlab/squiggle/seqgen"
	"bitbucket.org/mrrlab/squiggle/store"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = "branch: " + gitbranch + ", revision: " + githash + ", build time: " + buildstamp

// Logger settings.
var log = logging.MustGetLogger("squiggle")
var formatter = logging.MustStringFormatter(`%{message}`)

// command-line options
var (
	// application
	app = kingpin.New("squiggle", "nanopore squiggle simulator and event decoder").Version(version)

	// pore parameters
	kLen        = app.Flag("k", "k-mer length").Default("5").Int()
	meanDwell   = app.Flag("dwell", "mean dwell time in samples per k-mer").Default("10").Float64()
	snr         = app.Flag("snr", "signal-to-noise ratio (noise amplitude is 1/snr)").Default("250").Float64()
	dwellPolicy = app.Flag("dwell-policy", "dwell time distribution").
			Default("poisson").Enum("fixed", "normal", "gamma", "poisson")
	noisePolicy = app.Flag("noise", "noise policy").
			Default("normal").Enum("clean", "normal")
	levelPolicy = app.Flag("levels", "current level assignment policy").
			Default("random").Enum("even_space", "random", "resistor_model")

	// read generation
	nReads     = app.Flag("n", "number of reads to simulate").Default("10").Int()
	lengthDist = app.Flag("length-dist", "read length distribution").
			Default("uniform").Enum("fixed", "uniform", "normal")
	meanLength = app.Flag("length", "mean read length (fixed and normal distributions)").Default("100").Float64()
	minLength  = app.Flag("minlen", "minimum read length").Default("50").Int()
	maxLength  = app.Flag("maxlen", "maximum read length (uniform distribution)").Default("200").Int()

	// decoder parameters
	window    = app.Flag("window", "segmentation window size").Default("4").Int()
	threshold = app.Flag("threshold", "segmentation range threshold").Default("0.05").Float64()

	// persistence
	dbFileName = app.Flag("db", "bolt database for level tables and batches").String()
	tableName  = app.Flag("table", "load the level table by name from the database instead of generating one").String()
	saveTable  = app.Flag("savetable", "save the level table under a name").String()
	saveBatch  = app.Flag("savebatch", "save simulated sequences and signals under a name").String()

	// output
	showAlignments = app.Flag("alignments", "print a three-row alignment for every read").Bool()

	// technical
	seed       = app.Flag("seed", "random generator seed, default time based").Default("-1").Int64()
	cpuProfile = app.Flag("cpuprofile", "write cpu profile to file").String()

	// input/output
	outLogF  = app.Flag("log", "write log to a file").String()
	logLevel = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")
	jsonF = app.Flag("json", "write json output to a file").String()
)

func run() (summary *RunSummary) {
	startTime := time.Now()
	summary = &RunSummary{}

	rng := rand.New(rand.NewSource(*seed))

	settings := pore.Settings{
		K:           *kLen,
		MeanDwell:   *meanDwell,
		SNR:         *snr,
		DwellPolicy: *dwellPolicy,
		NoisePolicy: *noisePolicy,
		LevelPolicy: *levelPolicy,
	}

	var db *store.Store
	if *dbFileName != "" {
		var err error
		db, err = store.Open(*dbFileName)
		if err != nil {
			log.Fatal("Error opening database:", err)
		}
		defer db.Close()
	}

	var sim *pore.Simulator
	var err error
	if *tableName != "" {
		if db == nil {
			log.Fatal("-table requires -db")
		}
		m, err := db.LoadTable(*tableName)
		if err != nil {
			log.Fatal("Error loading level table:", err)
		}
		table, err := pore.TableFromMap(m)
		if err != nil {
			log.Fatal("Error loading level table:", err)
		}
		log.Infof("Loaded level table %q (k=%d)", *tableName, table.K)
		sim, err = pore.NewSimulatorWithTable(settings, table, rng)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		sim, err = pore.NewSimulator(settings, rng)
		if err != nil {
			log.Fatal(err)
		}
	}

	log.Infof("Pore: k=%d, levels=%s, dwell=%s(%v), noise=%s(1/%v)",
		sim.K(), *levelPolicy, *dwellPolicy, *meanDwell, *noisePolicy, *snr)
	if !sim.Table().Distinct() {
		log.Info("Level table has colliding levels")
	}

	if *saveTable != "" {
		if db == nil {
			log.Fatal("-savetable requires -db")
		}
		if err := db.SaveTable(*saveTable, sim.Table().Map()); err != nil {
			log.Fatal("Error saving level table:", err)
		}
		log.Noticef("Saved level table %q", *saveTable)
	}

	length, err := seqgen.NewLengthDist(*lengthDist, *meanLength, *minLength, *maxLength)
	if err != nil {
		log.Fatal(err)
	}
	src := seqgen.NewSource(rng, length, *minLength)
	stream := pore.NewStream(sim, src)

	decoder := decode.NewDecoder(sim.Table())

	var scorer align.Scorer
	var batch store.Batch
	summary.MinAccuracy = 1

	for i := 0; i < *nReads; i++ {
		d := stream.Next()

		decoded, err := decoder.Decode(d.Signal, *window, *threshold)
		if err != nil {
			log.Fatal(err)
		}

		acc := scorer.Accuracy(decoded, d.Sequence)
		log.Infof("read %d: bases=%d samples=%d called=%d accuracy=%.4f",
			i, len(d.Sequence), len(d.Signal), len(decoded), acc)
		if *showAlignments {
			log.Notice(scorer.Align(decoded, d.Sequence).String())
		}

		summary.Reads++
		summary.TotalBases += len(d.Sequence)
		summary.TotalSamples += len(d.Signal)
		summary.MeanAccuracy += acc
		if acc < summary.MinAccuracy {
			summary.MinAccuracy = acc
		}
		if acc > summary.MaxAccuracy {
			summary.MaxAccuracy = acc
		}

		if *saveBatch != "" {
			batch.Sequences = append(batch.Sequences, d.Sequence)
			batch.Signals = append(batch.Signals, d.Signal)
		}
	}
	if summary.Reads > 0 {
		summary.MeanAccuracy /= float64(summary.Reads)
	}

	if *saveBatch != "" {
		if db == nil {
			log.Fatal("-savebatch requires -db")
		}
		if err := db.SaveBatch(*saveBatch, &batch); err != nil {
			log.Fatal("Error saving batch:", err)
		}
		log.Noticef("Saved batch %q with %d reads", *saveBatch, summary.Reads)
	}

	log.Noticef("Mean accuracy over %d reads: %.4f (min %.4f, max %.4f)",
		summary.Reads, summary.MeanAccuracy, summary.MinAccuracy, summary.MaxAccuracy)

	endTime := time.Now()

	deltaT := endTime.Sub(startTime)
	log.Noticef("Running time: %v", deltaT)
	summary.Time = deltaT.Seconds()

	return
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	// logging
	logging.SetFormatter(formatter)

	var backend *logging.LogBackend
	if *outLogF != "" {
		f, err := os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Error creating log file:", err)
		}
		defer f.Close()
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	logging.SetLevel(level, "squiggle")
	logging.SetLevel(level, "pore")
	logging.SetLevel(level, "store")

	// print revision
	log.Info(version)

	// print commandline
	log.Info("Command line:", os.Args)

	if *seed == -1 {
		*seed = time.Now().UnixNano()
		log.Debug("Random seed from time")
	}
	log.Infof("Random seed=%v", *seed)

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	summary := run()
	summary.Version = version
	summary.CommandLine = os.Args
	summary.Seed = *seed

	// output summary in json format
	if *jsonF != "" {
		j, err := json.Marshal(summary)
		if err != nil {
			log.Error(err)
		} else {
			log.Debug(string(j))
			f, err := os.Create(*jsonF)
			if err != nil {
				log.Error("Error creating json output file:", err)
			} else {
				f.Write(j)
				f.Close()
			}
		}
	}
}
