package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/magsim/helmgo"
	"github.com/magsim/helmgo/io"
	"github.com/magsim/helmgo/optimize"
)

type FileGroup struct {
	log, prof *os.File
}

func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

func openFileGroup(logFile, profFile string) *FileGroup {
	fg := &FileGroup{}

	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(f)
		fg.log = f
	}

	if profFile != "" {
		f, err := os.Create(profFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		if err = pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err.Error())
		}
		fg.prof = f
	}

	return fg
}

func main() {
	var (
		simulate, optimizeFlag string
		analyze, exampleConfig string
		gridStep, desiredSize  float64
	)
	vars := map[string]*string{
		"Simulate":      &simulate,
		"Optimize":      &optimizeFlag,
		"Analyze":       &analyze,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&simulate, "Simulate", "",
		"Configuration file for [Simulate] mode.",
	)
	flag.StringVar(
		&optimizeFlag, "Optimize", "",
		"Configuration file for [Optimize] mode.",
	)
	flag.StringVar(
		&analyze, "Analyze", "",
		"Field table to recompute uniform-region statistics for.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. Accepted arguments are 'Simulate' "+
			"and 'Optimize'.",
	)
	flag.Float64Var(
		&gridStep, "GridStep", 0.01,
		"Axis sampling step assumed by [Analyze] mode.",
	)
	flag.Float64Var(
		&desiredSize, "DesiredSize", 0,
		"Target uniform-region size for [Analyze] mode. Optional.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Simulate":
		wrap := io.DefaultSimulateWrapper()
		err := gcfg.ReadFileInto(wrap, simulate)
		if err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Simulate

		if !con.ValidCoils() {
			log.Fatal("Invalid/non-existent 'Coils' value.")
		} else if !con.ValidCurrent() {
			log.Fatal("Invalid/non-existent 'Current' value.")
		} else if !con.ValidLength() {
			log.Fatal("Invalid/non-existent 'Length' value.")
		} else if !con.ValidSpacing() {
			log.Fatal("Invalid/non-existent 'Spacing' value.")
		} else if !con.ValidTurns() {
			log.Fatal("Invalid/non-existent 'Turns' value.")
		} else if !con.ValidGridStep() {
			log.Fatal("Invalid/non-existent 'GridStep' value.")
		} else if !con.ValidProfile() {
			log.Fatal("Invalid 'Profile' value.")
		} else if !con.ValidSegments() {
			log.Fatal("Invalid 'Segments' value.")
		}

		simulateMain(con)

	case "Optimize":
		wrap := io.DefaultOptimizeWrapper()
		err := gcfg.ReadFileInto(wrap, optimizeFlag)
		if err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Optimize

		if !con.ValidCoils() {
			log.Fatal("Invalid/non-existent 'Coils' value.")
		} else if !con.ValidCurrent() {
			log.Fatal("Invalid/non-existent 'Current' value.")
		} else if !con.ValidTurns() {
			log.Fatal("Invalid/non-existent 'Turns' value.")
		} else if !con.ValidDesiredSize() {
			log.Fatal("Invalid/non-existent 'DesiredSize' value.")
		} else if !con.ValidGridStep() {
			log.Fatal("Invalid 'GridStep' value.")
		} else if !con.ValidProfile() {
			log.Fatal("Invalid 'Profile' value.")
		} else if !con.ValidSegments() {
			log.Fatal("Invalid 'Segments' value.")
		} else if !con.ValidPopSize() {
			log.Fatal("Invalid 'PopSize' value.")
		} else if !con.ValidGenerations() {
			log.Fatal("Invalid 'Generations' value.")
		} else if !con.ValidFixedLength() {
			log.Fatal("'FixLength' is set without a positive 'FixedLength'.")
		}

		optimizeMain(con)

	case "Analyze":
		if gridStep <= 0 {
			log.Fatal("Invalid 'GridStep' value.")
		}
		analyzeMain(analyze, gridStep, desiredSize)

	case "ExampleConfig":
		switch exampleConfig {
		case "Simulate":
			fmt.Println(io.ExampleSimulateFile)
		case "Optimize":
			fmt.Println(io.ExampleOptimizeFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. Only recognized " +
					"arguments are 'Simulate' and 'Optimize'.",
			)
		}
	default:
		panic("Impossible")
	}
}

func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but helmgo "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

func simulateMain(con *io.SimulateConfig) {
	fg := openFileGroup(con.LogFile, con.ProfileFile)
	defer fg.Close()

	s, err := helmgo.NewSimulator(con, true)
	if err != nil {
		log.Fatal(err.Error())
	}

	table, err := s.Run(context.Background())
	if err != nil {
		log.Fatal(err.Error())
	}

	if con.ValidOutput() {
		if err := io.WriteFieldTable(con.Output, table); err != nil {
			log.Fatal(err.Error())
		}
	}
	if con.ValidXLSXFile() {
		if err := io.WriteFieldXLSX(con.XLSXFile, table); err != nil {
			log.Fatal(err.Error())
		}
	}
	if con.ValidDXFFile() {
		if err := io.WriteWindingsDXF(con.DXFFile, s.Windings()); err != nil {
			log.Fatal(err.Error())
		}
	}

	if center, ok := table.Lookup(0, 0, 0); ok {
		fmt.Printf(
			"Center field: Bx = %g T, By = %g T, Bz = %g T, |B| = %g T\n",
			center.Bx, center.By, center.Bz, center.B(),
		)
	}
	if !con.ValidOutput() && !con.ValidXLSXFile() {
		for i := range table.Samples {
			s := &table.Samples[i]
			fmt.Printf(
				"%.10g %.10g %.10g %.10g %.10g %.10g\n",
				s.X, s.Y, s.Z, s.Bx, s.By, s.Bz,
			)
		}
	}
}

func optimizeMain(con *io.OptimizeConfig) {
	fg := openFileGroup(con.LogFile, con.ProfileFile)
	defer fg.Close()

	res, err := helmgo.Optimize(context.Background(), con, true)
	if err != nil {
		log.Fatal(err.Error())
	}

	fmt.Printf(
		"Best geometry: L = %.2f m, spacing = %.2f m, fitness = %g\n",
		res.Best.Length, res.Best.Spacing, res.Fitness,
	)

	if con.ValidOutput() {
		f, err := os.Create(con.Output)
		if err != nil {
			log.Fatal(err.Error())
		}
		_, err = fmt.Fprintf(
			f, "L = %.2f m, spacing = %.2f m, fitness = %g\n",
			res.Best.Length, res.Best.Spacing, res.Fitness,
		)
		if err != nil {
			log.Fatal(err.Error())
		}
		if err = f.Close(); err != nil {
			log.Fatal(err.Error())
		}
	}
	if con.ValidXLSXFile() {
		err := io.WriteOptimizeXLSX(con.XLSXFile, res.Stats, res.Profile)
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

func analyzeMain(fname string, gridStep, desiredSize float64) {
	table, err := io.ReadFieldTable(fname)
	if err != nil {
		log.Fatal(err.Error())
	}

	span, ok := optimize.UniformSpan(table, gridStep)
	if !ok {
		fmt.Println("No contiguous uniform region found.")
		return
	}

	fmt.Printf("Uniform region span: %g m\n", span)
	if desiredSize > 0 {
		fmt.Printf("Fitness: %g\n", desiredSize/2-span)
	}
}
