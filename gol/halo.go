package gol

// haloView is what a worker reads for one band: the row above the band, the band itself
// and the row below, with the border rows wrapping around the torus. The rows are
// shared with the previous world; only the row headers are copied.
type haloView struct {
	rows   [][]byte
	startY int
}

func newHaloView(world World, startY, endY int) haloView {
	height := len(world)
	top := (startY - 1 + height) % height
	bottom := endY % height

	rows := make([][]byte, 0, endY-startY+2)
	rows = append(rows, world[top])
	rows = append(rows, world[startY:endY]...)
	rows = append(rows, world[bottom])
	return haloView{rows: rows, startY: startY}
}

// height is the number of rows in the band, excluding the halo.
func (v haloView) height() int {
	return len(v.rows) - 2
}

// liveNeighbors counts neighbours of the cell at band-local row y.
// The halo rows mean the row offsets never wrap; columns still do.
func (v haloView) liveNeighbors(y, x, width int) int {
	return countLiveNeighbors(v.rows, y+1, x, len(v.rows), width)
}

func (v haloView) cell(y, x int) byte {
	return v.rows[y+1][x]
}
