package models

// Cell is one square on a bingo card. Text and Free are fixed when the
// card is generated; Checked and Shake change during play.
type Cell struct {
	Text    string `json:"text"`
	Free    bool   `json:"free"`
	Checked bool   `json:"checked"`
	Shake   bool   `json:"shake"`
}
