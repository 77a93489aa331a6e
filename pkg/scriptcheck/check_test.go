// SPDX-License-Identifier: MPL-2.0

package scriptcheck

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/funkindev/vslice/internal/testutil"
)

const sampleScript = `package mods.scripts;

import funkin.play.PlayState;
import sys.io.File;
import polymod.*;
import Sys as System;

// Sys.command("ignored in comment");
/* openfl.Lib.current
   also ignored */
class Sample extends funkin.modding.module.ScriptedModule {
	var sys:Int = 0;

	public function onCreate(event) {
		var path = "sys.io.File";
		trace('Sys.time() in a string');
		Sys.command("rm");
		var save = new flixel.util.FlxSave();
		PlayState.instance.health = 1.5;
		save.data.sys = true;
		var obj = {polymod: 1};
	}
}

#if sys
trace("conditional");
#end
`

func TestCheckSource(t *testing.T) {
	t.Parallel()

	findings := NewChecker(nil).CheckSource("Sample.hxc", []byte(sampleScript))

	type got struct {
		line int
		col  int
		path string
		imp  bool
	}
	var gotFindings []got
	for _, f := range findings {
		gotFindings = append(gotFindings, got{f.Line, f.Col, f.Path, f.Import})
	}

	want := []got{
		{4, 8, "sys.io.File", true},
		{5, 8, "polymod", true},
		{6, 8, "Sys", true},
		{17, 3, "Sys", false},
		{18, 18, "flixel.util.FlxSave", false},
	}
	if !slices.Equal(gotFindings, want) {
		t.Errorf("findings = %+v\nwant %+v", gotFindings, want)
	}

	if s := findings[0].String(); s != "Sample.hxc:4:8: Usage of 'sys.io.File' belongs to blacklisted package 'sys' and is not allowed in scripts." {
		t.Errorf("String() = %q", s)
	}
}

func TestFix(t *testing.T) {
	t.Parallel()

	src := "import funkin.play.PlayState;\nimport sys.io.File;\n  import polymod.*; // trailing\nimport flixel.FlxG; import Sys;\nclass A {}\n"
	fixed, n := NewChecker(nil).Fix([]byte(src))
	if n != 3 {
		t.Errorf("Fix() removed %d statements, want 3", n)
	}
	want := "import funkin.play.PlayState;\n   // trailing\nimport flixel.FlxG; \nclass A {}\n"
	if string(fixed) != want {
		t.Errorf("Fix() =\n%q\nwant\n%q", fixed, want)
	}

	clean := []byte("import flixel.FlxG;\n")
	if out, n := NewChecker(nil).Fix(clean); n != 0 || string(out) != string(clean) {
		t.Errorf("Fix() on clean source = (%q, %d)", out, n)
	}
}

func TestFixFileAndCollectScripts(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		"scripts/A.hxc":     "import sys.FileSystem;\nclass A {}\n",
		"scripts/sub/B.HXC": "class B {}\n",
		"scripts/C.hx":      "import sys.FileSystem;\n",
		".git/hooks/D.hxc":  "import Sys;\n",
		"scripts/notes.txt": "Sys",
	})

	scripts, err := CollectScripts([]string{root})
	if err != nil {
		t.Fatalf("CollectScripts() error = %v", err)
	}
	want := []string{
		filepath.Join(root, "scripts", "A.hxc"),
		filepath.Join(root, "scripts", "sub", "B.HXC"),
	}
	if !slices.Equal(scripts, want) {
		t.Errorf("CollectScripts() = %v, want %v", scripts, want)
	}

	c := NewChecker(nil)
	n, err := c.FixFile(want[0])
	if err != nil || n != 1 {
		t.Fatalf("FixFile() = (%d, %v), want (1, nil)", n, err)
	}
	if got := testutil.MustReadFile(t, want[0]); got != "class A {}\n" {
		t.Errorf("fixed file = %q", got)
	}
	if findings, err := c.CheckFile(want[0]); err != nil || len(findings) != 0 {
		t.Errorf("CheckFile() after fix = (%v, %v), want no findings", findings, err)
	}
}
