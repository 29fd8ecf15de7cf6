package board

import "fmt"

// TypeDead marks a block captured by a match. It never matches anything.
const TypeDead = 0

// FallingState selects which physics rule moves a block.
type FallingState uint8

const (
	StateFalling   FallingState = iota + 1 // free body under gravity
	StateLaunching                         // bound to a launch group's trajectory
	StateResting                           // settled on the floor or on a block
)

func (s FallingState) String() string {
	switch s {
	case StateFalling:
		return "falling"
	case StateLaunching:
		return "launching"
	case StateResting:
		return "resting"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Block is one grid occupant. Its Row owns it; row and group are
// back-references maintained by Row and LaunchGroup.
type Block struct {
	id    int
	kind  int
	state FallingState
	speed float64 // own constant rate, used while not in a group
	time  int
	y     float64 // top edge, grows downward

	row   *Row
	group *LaunchGroup
}

func (b *Block) ID() int             { return b.id }
func (b *Block) Type() int           { return b.kind }
func (b *Block) State() FallingState { return b.state }
func (b *Block) Y() float64          { return b.y }
func (b *Block) Time() int           { return b.time }

// Group returns the launch group the block is bound to, or nil.
func (b *Block) Group() *LaunchGroup { return b.group }

// Column returns the column index, or -1 once the block has been removed.
func (b *Block) Column() int {
	if b.row == nil {
		return -1
	}
	return b.row.num
}

// Index returns the block's slot in its column (0 = bottom), or -1.
func (b *Block) Index() int {
	if b.row == nil {
		return -1
	}
	return b.row.indexOf(b)
}

// SetType changes the block's identity. Presentation reads the new type
// from the next projection.
func (b *Block) SetType(kind int) {
	b.kind = kind
}

// motion resolves which speed rule applies this tick and the time to
// evaluate it at.
func (b *Block) motion() (Motion, int) {
	if b.group != nil {
		return b.group.motion, b.group.time
	}
	return Constant(b.speed), b.time
}

func (b *Block) label() string {
	return fmt.Sprintf("#%d", b.id)
}

var typeNames = [...]string{"gray", "blue", "green", "yellow", "red", "purple"}

// TypeName returns the palette name of a block type; types past the
// built-in palette are numbered.
func TypeName(kind int) string {
	if kind >= 0 && kind < len(typeNames) {
		return typeNames[kind]
	}
	return fmt.Sprintf("type%d", kind)
}
