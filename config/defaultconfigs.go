package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		CellWidth:  5,
		CellHeight: 2,
		GridGap:    1,
		Colors: ConfigColors{
			Player1:     "#0d71e3", // blue
			Player2:     "#f28e1c", // orange
			Player1Hint: "#5295ec",
			Player2Hint: "#e6ad6b",
			Blocked:     "black",
			Forcefield:  "#aa4499",
			Empty:       "lightgray",
			Text:        "white",
			Cursor:      "#2e8b57",
			Selected:    "#5cb85c",
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Game: GameDefaults{
			Width:          7,
			Height:         7,
			PieceKind:      "queen",
			Opponent:       "none",
			ShowLegalMoves: false,
			TimeLimitMs:    1000,
		},
	}
}
