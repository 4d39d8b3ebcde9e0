package postgres

// Column pairs a physical column with the property name clients sort and
// filter by.
type Column struct {
	Name     string
	Property string
}

type Table struct {
	Name    string
	Alias   string
	Columns []Column
}

// As returns a handle on the same table under another alias, so a table can
// appear twice in one statement.
func (t Table) As(alias string) Table {
	t.Alias = alias
	return t
}

func (t Table) lookup(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name || c.Property == name {
			return c, true
		}
	}
	return Column{}, false
}

func (t Table) qualified(c Column) string {
	return t.Alias + "." + c.Name
}

type Projection struct {
	Expr  string
	Label string
}

func (p Projection) String() string {
	return p.Expr + " AS " + p.Label
}

// Projections lists every column of t, foreign keys included, as
// "alias.col AS prefix_col" in declaration order.
func Projections(t Table, prefix string) []Projection {
	out := make([]Projection, 0, len(t.Columns))
	for _, c := range t.Columns {
		out = append(out, Projection{
			Expr:  t.qualified(c),
			Label: prefix + "_" + c.Name,
		})
	}
	return out
}

var (
	userTable = Table{
		Name:  "jhi_user",
		Alias: "e",
		Columns: []Column{
			{Name: "id", Property: "id"},
			{Name: "login", Property: "login"},
			{Name: "first_name", Property: "firstName"},
			{Name: "last_name", Property: "lastName"},
			{Name: "email", Property: "email"},
			{Name: "image_url", Property: "imageUrl"},
			{Name: "activated", Property: "activated"},
			{Name: "lang_key", Property: "langKey"},
			{Name: "created_date", Property: "createdDate"},
			{Name: "last_modified_date", Property: "lastModifiedDate"},
		},
	}

	albumTable = Table{
		Name:  "album",
		Alias: "e",
		Columns: []Column{
			{Name: "id", Property: "id"},
			{Name: "title", Property: "title"},
			{Name: "description", Property: "description"},
			{Name: "created", Property: "created"},
			{Name: "user_id", Property: "userId"},
		},
	}

	photoTable = Table{
		Name:  "photo",
		Alias: "e",
		Columns: []Column{
			{Name: "id", Property: "id"},
			{Name: "title", Property: "title"},
			{Name: "description", Property: "description"},
			{Name: "image", Property: "image"},
			{Name: "image_content_type", Property: "imageContentType"},
			{Name: "height", Property: "height"},
			{Name: "width", Property: "width"},
			{Name: "taken", Property: "taken"},
			{Name: "uploaded", Property: "uploaded"},
			{Name: "album_id", Property: "albumId"},
		},
	}

	tagTable = Table{
		Name:  "tag",
		Alias: "e",
		Columns: []Column{
			{Name: "id", Property: "id"},
			{Name: "name", Property: "name"},
		},
	}
)

var photoTagLink = LinkTable{
	Name:        "rel_photo__tag",
	OwnerColumn: "photo_id",
	OtherColumn: "tag_id",
}
