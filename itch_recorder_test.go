// Copyright (c) 2024 Neomantra Corp

package itch_test

import itch "github.com/quotefeed/itch-go"

// recorder implements every Sinks capability interface, appending each
// callback's argument to a slice so tests can assert on call order and
// content.
type recorder struct {
	itch.NullSinks
	Adds      []itch.Add
	Executes  []itch.Execute
	Deletes   []itch.Delete
	Replaces  []itch.Replace
	Snapshots []itch.Snapshot
}

func (r *recorder) OnAdd(e itch.Add) error {
	r.Adds = append(r.Adds, e)
	return nil
}

func (r *recorder) OnExecute(e itch.Execute) error {
	r.Executes = append(r.Executes, e)
	return nil
}

func (r *recorder) OnDelete(e itch.Delete) error {
	r.Deletes = append(r.Deletes, e)
	return nil
}

func (r *recorder) OnReplace(e itch.Replace) error {
	r.Replaces = append(r.Replaces, e)
	return nil
}

func (r *recorder) OnSnapshot(s itch.Snapshot) error {
	r.Snapshots = append(r.Snapshots, s)
	return nil
}
