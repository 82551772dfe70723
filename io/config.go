package io

import (
	"github.com/magsim/helmgo/coil"
)

const (
	ExampleSimulateFile = `[Simulate]

#######################
# Required Parameters #
#######################

# Number of coils in the arrangement.
Coils = 2

# Driving current in amperes. The same current runs through every coil.
Current = 1.0

# Side length (or diameter, for circular coils) of each coil in meters.
# Give either a single value shared by all coils or one value per coil.
Length = 1.0

# Axial gap between consecutive coils in meters. Give either a single
# value or Coils - 1 values. A single coil needs no spacing at all.
Spacing = 0.5

# Number of turns of wire per coil. Give either a single value or one
# value per coil.
Turns = 30

# Step between neighboring grid points in meters. The endpoints and the
# origin are always sampled, whether or not the step lands on them.
GridStep = 0.05

#######################
# Optional Parameters #
#######################

# Winding profile. Must be one of [ Square | Circle | Polygon | Star ].
# Profile = Square

# Line segments per winding group. Each winding is discretized into
# 4 * Segments points.
# Segments = 10

# Vertical half extent for rectangular coils, in meters. Only meaningful
# with the Square profile; one value or one value per coil.
# B = 0.25

# Number of polygon sides (Polygon profile only). Default is 5.
# Sides = 5

# Number of star points (Star profile only). Default is 6.
# StarPoints = 6

# Orientation of the whole arrangement as z-x-z Euler angles in radians.
# Phi = 0
# Theta = 0
# Psi = 0

# Extent of the sampled volume along each axis, in meters. Three
# orthogonal planes through the origin are sampled. Defaults to the
# arrangement's half span in every direction.
# XMin = -0.5
# XMax = 0.5
# YMin = -0.5
# YMax = 0.5
# ZMin = -0.5
# ZMax = 0.5

# Restrict sampling to the coil axis instead of the three planes.
# AxisOnly = false

# Evaluation knobs. Workers defaults to the machine's core count.
# Workers = 4
# BatchSize = 120
# SegmentChunk = 256

# Output files. Output is a whitespace table readable by the Analyze
# mode; the other two are optional extra formats.
# Output = field.txt
# XLSXFile = field.xlsx
# DXFFile = windings.dxf

# Output files which are useful for profiling and debugging. Generally,
# there isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out`

	ExampleOptimizeFile = `[Optimize]

#######################
# Required Parameters #
#######################

# Number of coils in the arrangement being optimized.
Coils = 2

# Driving current in amperes.
Current = 1.0

# Number of turns of wire per coil. One value or one value per coil.
Turns = 30

# Target size of the uniform-field region along the axis, in meters.
DesiredSize = 0.5

#######################
# Optional Parameters #
#######################

# Winding profile and discretization, as in the Simulate section.
# Profile = Square
# Segments = 10

# Axial sampling step used by the fitness evaluation, in meters.
# GridStep = 0.01

# Genetic algorithm knobs.
# PopSize = 20
# Generations = 50
# CrossoverProb = 0.5
# MutationProb = 0.2
# Seed = 1

# Starting point injected into the first generation.
# InitialLength = 1.05
# InitialSpacing = 0.59

# Pin the coil length and search over spacing only.
# FixLength = false
# FixedLength = 1.0

# Output files. Output receives the best individual as a one-line
# summary; XLSXFile receives the per-generation statistics.
# Output = best.txt
# XLSXFile = generations.xlsx

# Output files which are useful for profiling and debugging.
# ProfileFile = prof.out
# LogFile = log.out`
)

type SharedConfig struct {
	// Optional
	Output               string
	LogFile, ProfileFile string
}

func (con *SharedConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

type SimulateConfig struct {
	SharedConfig

	// Required
	Coils    int
	Current  float64
	Length   []float64
	Spacing  []float64
	Turns    []int
	GridStep float64

	// Optional
	Profile    string
	Segments   int
	B          []float64
	Sides      int
	StarPoints int

	Phi, Theta, Psi float64

	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
	AxisOnly   bool

	Workers, BatchSize, SegmentChunk int

	XLSXFile, DXFFile string
}

type SimulateWrapper struct {
	Simulate SimulateConfig
}

func DefaultSimulateWrapper() *SimulateWrapper {
	con := SimulateConfig{}
	con.Current = 1
	con.Profile = "Square"
	con.Segments = 10
	return &SimulateWrapper{con}
}

func (con *SimulateConfig) ValidCoils() bool {
	return con.Coils > 0
}
func (con *SimulateConfig) ValidCurrent() bool {
	return con.Current != 0
}
func (con *SimulateConfig) ValidLength() bool {
	return len(con.Length) > 0
}
func (con *SimulateConfig) ValidSpacing() bool {
	return len(con.Spacing) > 0 || con.Coils == 1
}
func (con *SimulateConfig) ValidTurns() bool {
	return len(con.Turns) > 0
}
func (con *SimulateConfig) ValidGridStep() bool {
	return con.GridStep > 0
}
func (con *SimulateConfig) ValidProfile() bool {
	_, err := coil.ParseProfile(con.Profile)
	return err == nil
}
func (con *SimulateConfig) ValidSegments() bool {
	return con.Segments >= 2
}
func (con *SimulateConfig) ValidXLSXFile() bool {
	return con.XLSXFile != ""
}
func (con *SimulateConfig) ValidDXFFile() bool {
	return con.DXFFile != ""
}

// HasRanges reports whether the config sets an explicit sampling extent
// for any axis.
func (con *SimulateConfig) HasRanges() bool {
	return con.XMin != 0 || con.XMax != 0 ||
		con.YMin != 0 || con.YMax != 0 ||
		con.ZMin != 0 || con.ZMax != 0
}

type OptimizeConfig struct {
	SharedConfig

	// Required
	Coils       int
	Current     float64
	Turns       []int
	DesiredSize float64

	// Optional
	Profile    string
	Segments   int
	B          []float64
	Sides      int
	StarPoints int

	GridStep float64

	PopSize, Generations          int
	CrossoverProb, MutationProb   float64
	Seed                          int64
	InitialLength, InitialSpacing float64
	FixLength                     bool
	FixedLength                   float64

	Workers, BatchSize, SegmentChunk int

	XLSXFile string
}

type OptimizeWrapper struct {
	Optimize OptimizeConfig
}

func DefaultOptimizeWrapper() *OptimizeWrapper {
	con := OptimizeConfig{}
	con.Current = 1
	con.Profile = "Square"
	con.Segments = 10
	con.GridStep = 0.01
	con.PopSize = 20
	con.Generations = 50
	con.CrossoverProb = 0.5
	con.MutationProb = 0.2
	con.Seed = 1
	con.InitialLength = 1.05
	con.InitialSpacing = 0.59
	return &OptimizeWrapper{con}
}

func (con *OptimizeConfig) ValidCoils() bool {
	return con.Coils > 0
}
func (con *OptimizeConfig) ValidCurrent() bool {
	return con.Current != 0
}
func (con *OptimizeConfig) ValidTurns() bool {
	return len(con.Turns) > 0
}
func (con *OptimizeConfig) ValidDesiredSize() bool {
	return con.DesiredSize > 0
}
func (con *OptimizeConfig) ValidProfile() bool {
	_, err := coil.ParseProfile(con.Profile)
	return err == nil
}
func (con *OptimizeConfig) ValidSegments() bool {
	return con.Segments >= 2
}
func (con *OptimizeConfig) ValidGridStep() bool {
	return con.GridStep > 0
}
func (con *OptimizeConfig) ValidPopSize() bool {
	return con.PopSize > 0
}
func (con *OptimizeConfig) ValidGenerations() bool {
	return con.Generations > 0
}
func (con *OptimizeConfig) ValidFixedLength() bool {
	return !con.FixLength || con.FixedLength > 0
}
func (con *OptimizeConfig) ValidXLSXFile() bool {
	return con.XLSXFile != ""
}

// ProfileOptions converts the config's profile knobs into generator
// options.
func ProfileOptions(b []float64, sides, starPoints int) *coil.Options {
	return &coil.Options{B: b, Sides: sides, StarPoints: starPoints}
}
