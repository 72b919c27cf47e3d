package httpserver

import "shogichess/internal/hybrid"

// NewGameRequest chooses the board and each side's layout.
type NewGameRequest struct {
	BoardType hybrid.BoardType `json:"boardType"`
	Black     SideSetup        `json:"black"`
	White     SideSetup        `json:"white"`
}

type SideSetup struct {
	Name           string `json:"name"`
	Layout         string `json:"boardType"`
	PiecePlaceable bool   `json:"piecePlaceable"`
}

func (r NewGameRequest) setup() hybrid.Setup {
	return hybrid.Setup{
		Board: r.BoardType,
		Black: hybrid.TeamSetup{PlayerID: r.Black.Name, Layout: r.Black.Layout, Placeable: r.Black.PiecePlaceable},
		White: hybrid.TeamSetup{PlayerID: r.White.Name, Layout: r.White.Layout, Placeable: r.White.PiecePlaceable},
	}
}

type StateRequest struct {
	GameID string `json:"gameId"`
}

type ActionRequest struct {
	GameID        string            `json:"gameId"`
	TargetPieceID hybrid.PieceID    `json:"targetPieceId"`
	ActionType    hybrid.ActionType `json:"actionType"`
	Promote       bool              `json:"promote"`
	X             int               `json:"x"`
	Y             int               `json:"y"`
}

func (r ActionRequest) request() hybrid.ActionRequest {
	return hybrid.ActionRequest{PieceID: r.TargetPieceID, Type: r.ActionType, Promote: r.Promote, X: r.X, Y: r.Y}
}

// AiMoveRequest asks the engine to play for the side to move. Zero values
// fall back to the server defaults.
type AiMoveRequest struct {
	GameID   string `json:"gameId"`
	MaxDepth int    `json:"maxDepth"`
	TimeMs   int64  `json:"timeMs"`
}

type AiMoveResponse struct {
	Action *hybrid.LastMove `json:"action"`
	Score  float64          `json:"score"`
	Depth  int              `json:"depth"`
	Nodes  int64            `json:"nodes"`
	TimeMs int64            `json:"timeMs"`
	State  GameView         `json:"state"`
}

// GameView is the client-facing picture of a game.
type GameView struct {
	GameID         string                          `json:"gameId"`
	Board          [][]*PieceView                  `json:"board"`
	BoardSettings  BoardSettings                   `json:"boardSettings"`
	CapturedPieces CapturedPieces                  `json:"capturedPieces"`
	LegalActions   map[hybrid.PieceID]LegalActions `json:"legalActions"`
	Turn           Turn                            `json:"turn"`
	LastMove       *hybrid.LastMove                `json:"lastMove"`
	CheckStatus    CheckStatus                     `json:"checkStatus"`
	GameResult     *hybrid.Result                  `json:"gameResult"`
	Error          string                          `json:"error,omitempty"`
}

type PieceView struct {
	ID          hybrid.PieceID `json:"id"`
	Name        hybrid.Kind    `json:"name"`
	Promoted    bool           `json:"promoted"`
	Promotable  bool           `json:"promotable"`
	PromoteLine int            `json:"promoteLine"`
	ImmobileRow int            `json:"immobileRow"`
	Rearranged  bool           `json:"rearranged"`
	Team        hybrid.Team    `json:"team"`
}

type BoardSettings struct {
	Type       hybrid.BoardType `json:"type"`
	Size       int              `json:"size"`
	BlackBoard string           `json:"blackBoard"`
	WhiteBoard string           `json:"whiteBoard"`
}

// CapturedGroup lists the pooled pieces of one kind.
type CapturedGroup struct {
	PieceIDs  []hybrid.PieceID `json:"pieceIds"`
	Name      hybrid.Kind      `json:"name"`
	Placeable bool             `json:"placeable"`
}

type CapturedPieces struct {
	Black []CapturedGroup `json:"black"`
	White []CapturedGroup `json:"white"`
}

// MoveOption is one target square. Promotion is "", "optional" or "forced".
type MoveOption struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Promotion string `json:"promotion,omitempty"`
}

type LegalActions struct {
	Moves  []MoveOption      `json:"moves"`
	Places []hybrid.Position `json:"places"`
}

type Turn struct {
	Player hybrid.Team `json:"player"`
	Step   int         `json:"step"`
}

type CheckStatus struct {
	White bool `json:"white"`
	Black bool `json:"black"`
}
