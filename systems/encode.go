package systems

// Cell codes written into the encoded grid vector.
const (
	CellEmpty = 0.0
	CellFood  = 1.0
	CellSnake = 2.0
	CellHead  = 3.0
)

// NumOutputs is the decision width expected from a genome: one output per heading.
const NumOutputs = 4

// EncodeGrid writes the state of a gridSize x gridSize board into dst and returns it.
// Cell (x, y) maps to index y*gridSize + x. Layers are applied in order
// empty, food, body, head, so later layers overwrite earlier ones.
// dst is reallocated when its length is not gridSize*gridSize.
func EncodeGrid(dst []float64, gridSize int, snake *Snake, food Point) []float64 {
	n := gridSize * gridSize
	if len(dst) != n {
		dst = make([]float64, n)
	}
	for i := range dst {
		dst[i] = CellEmpty
	}

	if food.InBounds(gridSize) {
		dst[food.Y*gridSize+food.X] = CellFood
	}
	for _, part := range snake.Body {
		if part.InBounds(gridSize) {
			dst[part.Y*gridSize+part.X] = CellSnake
		}
	}
	if head := snake.Head(); head.InBounds(gridSize) {
		dst[head.Y*gridSize+head.X] = CellHead
	}
	return dst
}

// Argmax returns the index of the largest value; the first index wins ties.
// Returns -1 for an empty slice.
func Argmax(values []float64) int {
	if len(values) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}

// DecideDirection maps network outputs to a heading: the argmax index 0 is
// North, 1 South, 2 West and anything else East.
func DecideDirection(outputs []float64) Direction {
	switch Argmax(outputs) {
	case 0:
		return North
	case 1:
		return South
	case 2:
		return West
	default:
		return East
	}
}
