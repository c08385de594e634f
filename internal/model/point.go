package model

// PointDetail distinguishes rally points, built from strokes, from simple
// points whose winner is assigned directly.
type PointDetail string

const (
	PointRally  PointDetail = "rally"
	PointSimple PointDetail = "simple"
)

// Point is one point of a game.
type Point struct {
	Detail  PointDetail `json:"detail"`
	Strokes []Stroke    `json:"strokes,omitempty"`
	Winner  string      `json:"winner,omitempty"`

	// Score is the game score after this point was won.
	Score GameScore `json:"score"`

	Status Status `json:"status"`
	Seq    int64  `json:"seq,omitempty"`
}

// NewRallyPoint returns an empty point that is resolved from its strokes.
func NewRallyPoint() *Point {
	return &Point{Detail: PointRally, Status: StatusNotStarted}
}

// NewSimplePoint returns a point already assigned to winner.
func NewSimplePoint(winner string) *Point {
	return &Point{Detail: PointSimple, Winner: winner, Status: StatusNotStarted}
}

func (p *Point) Kind() Kind    { return KindPoint }
func (p *Point) State() Status { return p.Status.normalize() }

// IsSimple reports whether the winner was assigned without stroke detail.
func (p *Point) IsSimple() bool { return p.Detail == PointSimple }

// CurrentStroke returns the most recent stroke, or nil.
func (p *Point) CurrentStroke() *Stroke {
	if len(p.Strokes) == 0 {
		return nil
	}
	return &p.Strokes[len(p.Strokes)-1]
}

// AddStroke appends s and marks the point in progress.
func (p *Point) AddStroke(s Stroke) {
	p.Strokes = append(p.Strokes, s)
	p.MarkInProgress()
}

func (p *Point) MarkInProgress() { advance(&p.Status, StatusInProgress) }
func (p *Point) MarkComplete()   { advance(&p.Status, StatusComplete) }
