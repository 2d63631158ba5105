package gol

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestGateway(t *testing.T, p Params) (*ioGateway, string, string) {
	t.Helper()
	imageDir := filepath.Join(t.TempDir(), "images")
	outDir := filepath.Join(t.TempDir(), "out")
	g := newIoGateway(p, imageDir, outDir, logrus.NewEntry(quietLogger()))
	t.Cleanup(g.close)
	return g, imageDir, outDir
}

func pgmBytes(width, height int, cells []byte) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "P5\n%d %d\n255\n", width, height)
	b.Write(cells)
	return b.Bytes()
}

func TestSaveIsCompleteWhenIdle(t *testing.T) {
	p := Params{ImageWidth: 17, ImageHeight: 9}
	g, _, outDir := newTestGateway(t, p)

	for i := 0; i < 20; i++ {
		world := randomWorld(int64(i), p.ImageWidth, p.ImageHeight, 0.5)
		name := fmt.Sprintf("17x9x%d", i)
		if err := g.save(name, world); err != nil {
			t.Fatal(err)
		}
		if err := g.checkIdle(); err != nil {
			t.Fatal(err)
		}

		data, err := os.ReadFile(filepath.Join(outDir, name+".pgm"))
		if err != nil {
			t.Fatal(err)
		}
		if expected := pgmBytes(17, 9, world.Bytes()); !bytes.Equal(data, expected) {
			t.Fatalf("save %d: file was not complete once the gateway was idle", i)
		}
	}
}

func TestLoadDecodesCells(t *testing.T) {
	p := Params{ImageWidth: 4, ImageHeight: 2}
	g, imageDir, _ := newTestGateway(t, p)

	cells := []byte{255, 0, 12, 255, '\n', ' ', 255, 254}
	if err := writePgm(filepath.Join(imageDir, "4x2.pgm"), 4, 2, cells); err != nil {
		t.Fatal(err)
	}

	world, err := g.load("4x2", 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	expected := World{{alive, dead, dead, alive}, {dead, dead, alive, dead}}
	if !reflect.DeepEqual(world, expected) {
		t.Errorf("expected %v, got %v", expected, world)
	}
}

func TestLoadFailures(t *testing.T) {
	p := Params{ImageWidth: 4, ImageHeight: 4}
	g, imageDir, _ := newTestGateway(t, p)

	if err := os.MkdirAll(imageDir, os.ModePerm); err != nil {
		t.Fatal(err)
	}
	files := map[string][]byte{
		"wrongsize": pgmBytes(4, 3, make([]byte, 12)),
		"short":     pgmBytes(4, 4, make([]byte, 15)),
		"notpgm":    []byte("P2\n4 4\n255\n"),
		"maxval":    []byte("P5\n4 4\n15\n0000000000000000"),
		"truncated": []byte("P5\n4"),
		"goodafter": pgmBytes(4, 4, bytes.Repeat([]byte{255}, 16)),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(imageDir, name+".pgm"), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	for _, name := range []string{"missing", "wrongsize", "short", "notpgm", "maxval", "truncated"} {
		t.Run(name, func(t *testing.T) {
			if _, err := g.load(name, 4, 4); !errors.Is(err, ErrIo) {
				t.Errorf("expected ErrIo, got %v", err)
			}
		})
	}

	// A failed load leaves the gateway usable.
	world, err := g.load("goodafter", 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if world.AliveCount() != 16 {
		t.Errorf("expected 16 alive cells, got %d", world.AliveCount())
	}
	if err := g.checkIdle(); err != nil {
		t.Errorf("expected no pending error, got %v", err)
	}
}

func TestSaveFailureIsReported(t *testing.T) {
	p := Params{ImageWidth: 3, ImageHeight: 3}
	blocker := filepath.Join(t.TempDir(), "out")
	if err := os.WriteFile(blocker, []byte("not a directory"), 0o644); err != nil {
		t.Fatal(err)
	}
	g := newIoGateway(p, t.TempDir(), blocker, logrus.NewEntry(quietLogger()))
	defer g.close()

	if err := g.save("3x3x0", initWorld(3, 3)); !errors.Is(err, ErrIo) {
		t.Fatalf("expected ErrIo, got %v", err)
	}
	if err := g.checkIdle(); err != nil {
		t.Errorf("the error should only be reported once, got %v", err)
	}
}

func TestReadPgmHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comment.pgm")
	data := append([]byte("P5\n# written by hand\n3  2\n255\n"), '\n', 255, ' ', '\t', 255, 0)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cells, err := readPgm(path, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if expected := []byte{'\n', 255, ' ', '\t', 255, 0}; !bytes.Equal(cells, expected) {
		t.Errorf("expected %v, got %v", expected, cells)
	}
}
