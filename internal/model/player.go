package model

type Player struct {
	ID string
}

// Players holds the ids seated at each color; an empty id is a free seat.
// The ids authenticate their owners and never leave the server.
type Players struct {
	White string
	Black string
}

// Seats reports which colors are taken, without saying by whom.
type Seats struct {
	White bool `json:"white"`
	Black bool `json:"black"`
}

func (p Players) colorOf(playerID string) (Color, bool) {
	switch {
	case playerID == "":
		return White, false
	case p.White == playerID:
		return White, true
	case p.Black == playerID:
		return Black, true
	}
	return White, false
}

func (p Players) full() bool {
	return p.White != "" && p.Black != ""
}

func (p Players) seats() Seats {
	return Seats{White: p.White != "", Black: p.Black != ""}
}
