package postgres

var (
	DeleteLinks  = deleteLinks
	ReplaceLinks = replaceLinks
	PhotoTagLink = photoTagLink
)
