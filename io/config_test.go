package io

import (
	"testing"

	"gopkg.in/gcfg.v1"
)

func TestExampleSimulateFileParses(t *testing.T) {
	wrap := DefaultSimulateWrapper()
	if err := gcfg.ReadStringInto(wrap, ExampleSimulateFile); err != nil {
		t.Fatalf("Example simulate config did not parse: %v", err)
	}
	con := &wrap.Simulate

	if !con.ValidCoils() {
		t.Errorf("Example simulate config has invalid Coils.")
	}
	if !con.ValidCurrent() {
		t.Errorf("Example simulate config has invalid Current.")
	}
	if !con.ValidLength() {
		t.Errorf("Example simulate config has invalid Length.")
	}
	if !con.ValidSpacing() {
		t.Errorf("Example simulate config has invalid Spacing.")
	}
	if !con.ValidTurns() {
		t.Errorf("Example simulate config has invalid Turns.")
	}
	if !con.ValidGridStep() {
		t.Errorf("Example simulate config has invalid GridStep.")
	}
	if !con.ValidProfile() {
		t.Errorf("Example simulate config has invalid Profile.")
	}
	if !con.ValidSegments() {
		t.Errorf("Example simulate config has invalid Segments.")
	}

	if con.Coils != 2 || con.Current != 1.0 || con.GridStep != 0.05 {
		t.Errorf("Example simulate config parsed to unexpected values: %+v.",
			con)
	}
}

func TestExampleOptimizeFileParses(t *testing.T) {
	wrap := DefaultOptimizeWrapper()
	if err := gcfg.ReadStringInto(wrap, ExampleOptimizeFile); err != nil {
		t.Fatalf("Example optimize config did not parse: %v", err)
	}
	con := &wrap.Optimize

	if !con.ValidCoils() {
		t.Errorf("Example optimize config has invalid Coils.")
	}
	if !con.ValidCurrent() {
		t.Errorf("Example optimize config has invalid Current.")
	}
	if !con.ValidTurns() {
		t.Errorf("Example optimize config has invalid Turns.")
	}
	if !con.ValidDesiredSize() {
		t.Errorf("Example optimize config has invalid DesiredSize.")
	}
	if !con.ValidGridStep() {
		t.Errorf("Example optimize config has invalid GridStep.")
	}
	if !con.ValidPopSize() || !con.ValidGenerations() {
		t.Errorf("Example optimize config has invalid GA knobs: %+v.", con)
	}
	if !con.ValidFixedLength() {
		t.Errorf("Example optimize config has invalid FixedLength.")
	}
}

func TestDefaultsSurviveParse(t *testing.T) {
	// Keys omitted from the file must keep their wrapper defaults.
	wrap := DefaultOptimizeWrapper()
	src := `[Optimize]
Coils = 3
Current = 2.0
Turns = 10
DesiredSize = 0.3`
	if err := gcfg.ReadStringInto(wrap, src); err != nil {
		t.Fatalf("Minimal optimize config did not parse: %v", err)
	}
	con := &wrap.Optimize

	if con.PopSize != 20 || con.Generations != 50 {
		t.Errorf("Defaults lost: PopSize = %d, Generations = %d.",
			con.PopSize, con.Generations)
	}
	if con.GridStep != 0.01 {
		t.Errorf("Default GridStep lost: %g.", con.GridStep)
	}
	if con.InitialLength != 1.05 || con.InitialSpacing != 0.59 {
		t.Errorf("Default initial individual lost: (%g, %g).",
			con.InitialLength, con.InitialSpacing)
	}
	if con.Coils != 3 || con.Current != 2.0 || con.DesiredSize != 0.3 {
		t.Errorf("Explicit values not parsed: %+v.", con)
	}
}

func TestBroadcastableSliceKeys(t *testing.T) {
	wrap := DefaultSimulateWrapper()
	src := `[Simulate]
Coils = 3
Current = 1.0
Length = 1.0
Length = 1.2
Length = 1.4
Spacing = 0.5
Spacing = 0.7
Turns = 30
GridStep = 0.05`
	if err := gcfg.ReadStringInto(wrap, src); err != nil {
		t.Fatalf("Multi-valued simulate config did not parse: %v", err)
	}
	con := &wrap.Simulate

	if len(con.Length) != 3 || con.Length[2] != 1.4 {
		t.Errorf("Repeated Length keys parsed to %v.", con.Length)
	}
	if len(con.Spacing) != 2 {
		t.Errorf("Repeated Spacing keys parsed to %v.", con.Spacing)
	}
	if len(con.Turns) != 1 {
		t.Errorf("Single Turns key parsed to %v.", con.Turns)
	}
}

func TestInvalidProfileRejected(t *testing.T) {
	con := &SimulateConfig{Profile: "Hexagram"}
	if con.ValidProfile() {
		t.Errorf("Profile 'Hexagram' should not validate.")
	}
}
