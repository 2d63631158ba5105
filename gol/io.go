package gol

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
)

// ioCommand allows requesting behaviour from the io (pgm) goroutine.
type ioCommand uint8

const (
	ioOutput ioCommand = iota
	ioInput
	ioCheckIdle
)

// ioChannels are the io goroutine's ends of the gateway channels.
type ioChannels struct {
	command  <-chan ioCommand
	idle     chan<- bool
	filename <-chan string
	output   <-chan uint8
	input    chan<- uint8
	err      chan<- error
}

// ioState is the internal state of the io goroutine.
type ioState struct {
	params   Params
	channels ioChannels
	imageDir string
	outDir   string
	log      *logrus.Entry
}

// ioGateway is the distributor's side of the io goroutine. Every method waits for the
// request it makes to finish, so at most one load or save is ever in flight.
type ioGateway struct {
	command  chan<- ioCommand
	idle     <-chan bool
	filename chan<- string
	output   chan<- uint8
	input    <-chan uint8
	err      <-chan error
}

// newIoGateway starts the io goroutine. It runs until close is called.
func newIoGateway(p Params, imageDir, outDir string, log *logrus.Entry) *ioGateway {
	command := make(chan ioCommand)
	idle := make(chan bool)
	filename := make(chan string)
	output := make(chan uint8, p.ImageWidth)
	input := make(chan uint8, p.ImageWidth)
	errs := make(chan error, 1)

	io := ioState{
		params: p,
		channels: ioChannels{
			command:  command,
			idle:     idle,
			filename: filename,
			output:   output,
			input:    input,
			err:      errs,
		},
		imageDir: imageDir,
		outDir:   outDir,
		log:      log,
	}
	go io.start()

	return &ioGateway{
		command:  command,
		idle:     idle,
		filename: filename,
		output:   output,
		input:    input,
		err:      errs,
	}
}

// load reads images/<name>.pgm into a new world.
func (g *ioGateway) load(name string, width, height int) (World, error) {
	g.command <- ioInput
	g.filename <- name

	world := initWorld(height, width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			select {
			case val := <-g.input:
				world[y][x] = val
			case err := <-g.err:
				return nil, err
			}
		}
	}
	return world, nil
}

// save streams the world to out/<name>.pgm and returns once the file has been flushed.
func (g *ioGateway) save(name string, world World) error {
	g.command <- ioOutput
	g.filename <- name
	for y := range world {
		for x := range world[y] {
			g.output <- world[y][x]
		}
	}
	return g.checkIdle()
}

// checkIdle returns once every earlier request has drained, with the error of the last
// one if it failed.
func (g *ioGateway) checkIdle() error {
	g.command <- ioCheckIdle
	<-g.idle
	select {
	case err := <-g.err:
		return err
	default:
		return nil
	}
}

func (g *ioGateway) close() {
	close(g.command)
}

// start is the io goroutine's loop.
func (io *ioState) start() {
	for command := range io.channels.command {
		switch command {
		case ioInput:
			if err := io.readPgmImage(); err != nil {
				io.log.Error(err)
				io.channels.err <- err
			}
		case ioOutput:
			if err := io.writePgmImage(); err != nil {
				io.log.Error(err)
				io.channels.err <- err
			}
		case ioCheckIdle:
			io.channels.idle <- true
		}
	}
}

// writePgmImage receives the world one cell at a time and writes it to a pgm file.
func (io *ioState) writePgmImage() error {
	filename := <-io.channels.filename

	width, height := io.params.ImageWidth, io.params.ImageHeight
	cells := make([]byte, width*height)
	for i := range cells {
		cells[i] = <-io.channels.output
	}

	path := filepath.Join(io.outDir, filename+".pgm")
	if err := writePgm(path, width, height, cells); err != nil {
		return err
	}
	io.log.WithField("file", path).Info("Output done")
	return nil
}

// readPgmImage opens a pgm file and sends its cells one at a time.
func (io *ioState) readPgmImage() error {
	filename := <-io.channels.filename

	path := filepath.Join(io.imageDir, filename+".pgm")
	cells, err := readPgm(path, io.params.ImageWidth, io.params.ImageHeight)
	if err != nil {
		return err
	}
	for _, b := range cells {
		io.channels.input <- cellValue(b)
	}
	io.log.WithField("file", path).Info("Input done")
	return nil
}

func writePgm(path string, width, height int, cells []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("%w: %v", ErrIo, err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIo, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "P5\n%d %d\n255\n", width, height)
	if _, err := w.Write(cells); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrIo, path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrIo, path, err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %v", ErrIo, path, err)
	}
	return nil
}

// readPgm reads a binary pgm file and returns its width*height pixels.
func readPgm(path string, width, height int) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIo, err)
	}

	var fields [4]string
	pos := 0
	for i := range fields {
		fields[i], pos = pgmToken(data, pos)
		if fields[i] == "" {
			return nil, fmt.Errorf("%w: %s: truncated header", ErrIo, path)
		}
	}
	if fields[0] != "P5" {
		return nil, fmt.Errorf("%w: %s: not a pgm file", ErrIo, path)
	}
	if w, err := strconv.Atoi(fields[1]); err != nil || w != width {
		return nil, fmt.Errorf("%w: %s: incorrect width %q, expected %d", ErrIo, path, fields[1], width)
	}
	if h, err := strconv.Atoi(fields[2]); err != nil || h != height {
		return nil, fmt.Errorf("%w: %s: incorrect height %q, expected %d", ErrIo, path, fields[2], height)
	}
	if fields[3] != "255" {
		return nil, fmt.Errorf("%w: %s: incorrect maxval/bit depth %q", ErrIo, path, fields[3])
	}

	// A single whitespace byte separates the header from the pixels.
	pixels := data[pos:]
	if len(pixels) > 0 {
		pixels = pixels[1:]
	}
	if len(pixels) < width*height {
		return nil, fmt.Errorf("%w: %s: expected %d pixels, found %d", ErrIo, path, width*height, len(pixels))
	}
	return pixels[:width*height], nil
}

// pgmToken returns the header token starting at or after pos, skipping whitespace and
// comments, and the position just past it. It returns "" at the end of the data.
func pgmToken(data []byte, pos int) (string, int) {
	for pos < len(data) {
		switch c := data[pos]; {
		case c == '#':
			for pos < len(data) && data[pos] != '\n' {
				pos++
			}
		case isPgmSpace(c):
			pos++
		default:
			start := pos
			for pos < len(data) && !isPgmSpace(data[pos]) {
				pos++
			}
			return string(data[start:pos]), pos
		}
	}
	return "", pos
}

func isPgmSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
