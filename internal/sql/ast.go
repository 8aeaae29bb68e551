package sql

// Statement is the common interface for all parsed SQL statements.
type Statement interface {
	stmtNode()
}

// ColumnDef is one column in a CREATE TABLE statement. TypeName is kept as
// written; the engine resolves it against the known data types at execution
// time. Size records a VARCHAR(n) length but is not enforced.
type ColumnDef struct {
	Name       string
	TypeName   string
	Size       int
	PrimaryKey bool
	Unique     bool
	NotNull    bool
	Default    *Literal
}

// ForeignKey is a FOREIGN KEY (col) REFERENCES table(col) clause. It is
// accepted syntactically; referential integrity is not enforced.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// CreateTableStmt represents a parsed CREATE TABLE statement.
type CreateTableStmt struct {
	Table       string
	Columns     []ColumnDef
	ForeignKeys []ForeignKey
}

func (*CreateTableStmt) stmtNode() {}

// InsertStmt represents a parsed INSERT statement. Columns is empty when the
// statement omits the column list, meaning schema declaration order.
type InsertStmt struct {
	Table   string
	Columns []string
	Values  []Literal
}

func (*InsertStmt) stmtNode() {}

// ColumnRef names a column, optionally qualified as table.column.
type ColumnRef struct {
	Table string
	Name  string
}

func (c ColumnRef) String() string {
	if c.Table == "" {
		return c.Name
	}
	return c.Table + "." + c.Name
}

// CompareOp is a WHERE comparison operator.
type CompareOp int

const (
	OpEq CompareOp = iota + 1
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
)

func (op CompareOp) String() string {
	switch op {
	case OpEq:
		return "="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	default:
		return "?"
	}
}

// Holds reports whether the operator is satisfied by a three-way comparison
// result as returned by Value.Compare.
func (op CompareOp) Holds(cmp int) bool {
	switch op {
	case OpEq:
		return cmp == 0
	case OpNe:
		return cmp != 0
	case OpLt:
		return cmp < 0
	case OpGt:
		return cmp > 0
	case OpLe:
		return cmp <= 0
	case OpGe:
		return cmp >= 0
	default:
		return false
	}
}

// Condition is a single "column op literal" comparison. A WHERE clause is a
// list of these combined with AND.
type Condition struct {
	Column ColumnRef
	Op     CompareOp
	Value  Literal
}

// JoinClause is a JOIN/LEFT JOIN ... ON left.col = right.col clause.
type JoinClause struct {
	Table    string
	Left     bool // LEFT JOIN keeps unmatched left rows
	LeftCol  ColumnRef
	RightCol ColumnRef
}

// OrderBy is an ORDER BY column [ASC|DESC] clause.
type OrderBy struct {
	Column ColumnRef
	Desc   bool
}

// SelectStmt represents a parsed SELECT statement. Limit is -1 when absent.
type SelectStmt struct {
	Star    bool
	Columns []ColumnRef
	Table   string
	Join    *JoinClause
	Where   []Condition
	OrderBy *OrderBy
	Limit   int
}

func (*SelectStmt) stmtNode() {}

// Assignment is one "col = literal" pair in an UPDATE SET clause.
type Assignment struct {
	Column string
	Value  Literal
}

// UpdateStmt represents a parsed UPDATE statement. An empty Where applies to
// every row.
type UpdateStmt struct {
	Table   string
	Assigns []Assignment
	Where   []Condition
}

func (*UpdateStmt) stmtNode() {}

// DeleteStmt represents a parsed DELETE statement. An empty Where deletes
// every row.
type DeleteStmt struct {
	Table string
	Where []Condition
}

func (*DeleteStmt) stmtNode() {}
