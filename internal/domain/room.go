package domain

type Room struct {
	ID        int64  `json:"id"`
	Number    string `json:"number"`
	Type      string `json:"type"`
	Price     int64  `json:"price"`
	Capacity  int    `json:"capacity"`
	Available bool   `json:"available"`
}
