package entity

type Tag struct {
	ID   int64
	Name string
}
