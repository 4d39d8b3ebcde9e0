package request

type ListRequest struct {
	Page      int      `form:"page" binding:"omitempty,min=0"`
	Size      int      `form:"size" binding:"omitempty,min=1"`
	Sort      []string `form:"sort"`
	EagerLoad bool     `form:"eagerload"`
	Filter    string   `form:"filter"`
}
