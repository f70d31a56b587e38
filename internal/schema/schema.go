// Package schema folds SQL migrations into a table model that the express
// archetype turns into model stubs under src/models.
package schema

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	pgquery "github.com/pganalyze/pg_query_go/v6"
)

// MigrationSuffix selects the files LoadDir reads.
const MigrationSuffix = ".up.sql"

type Column struct {
	Name    string
	Type    string
	NotNull bool
}

type Table struct {
	Schema  string
	Name    string
	Columns []Column
	PK      []string
}

// DefaultSchema is Postgres' default search path; tables in it are stored
// unqualified.
const DefaultSchema = "public"

// Schema is keyed by schema.name, or name for tables in DefaultSchema.
type Schema struct {
	Tables map[string]*Table
}

func New() *Schema { return &Schema{Tables: map[string]*Table{}} }

func normalizeSchema(schema string) string {
	if schema == DefaultSchema {
		return ""
	}
	return schema
}

func tableKey(schema, name string) string {
	if schema = normalizeSchema(schema); schema != "" {
		return schema + "." + name
	}
	return name
}

// ensureTable creates or returns a table entry for the given schema/name
func (s *Schema) ensureTable(schema, name string) *Table {
	key := tableKey(schema, name)
	if t, ok := s.Tables[key]; ok {
		return t
	}
	t := &Table{Schema: normalizeSchema(schema), Name: name}
	s.Tables[key] = t
	return t
}

// SortedTables returns the tables ordered by key.
func (s *Schema) SortedTables() []*Table {
	keys := make([]string, 0, len(s.Tables))
	for k := range s.Tables {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*Table, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.Tables[k])
	}
	return out
}

func (t *Table) colIndex(name string) int {
	for i := range t.Columns {
		if strings.EqualFold(t.Columns[i].Name, name) {
			return i
		}
	}
	return -1
}

// addColumn adds or replaces a column
func (t *Table) addColumn(c Column) {
	if i := t.colIndex(c.Name); i >= 0 {
		t.Columns[i] = c
		return
	}
	t.Columns = append(t.Columns, c)
}

func (t *Table) dropColumn(name string) {
	if i := t.colIndex(name); i >= 0 {
		t.Columns = append(t.Columns[:i], t.Columns[i+1:]...)
	}
	pk := t.PK[:0]
	for _, k := range t.PK {
		if !strings.EqualFold(k, name) {
			pk = append(pk, k)
		}
	}
	t.PK = pk
}

func (t *Table) addPK(col string) {
	for _, k := range t.PK {
		if k == col {
			return
		}
	}
	t.PK = append(t.PK, col)
}

// LoadDir applies every *.up.sql file under dir, in lexical path order.
func LoadDir(dir string) (*Schema, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), MigrationSuffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no *%s files found under %s", MigrationSuffix, dir)
	}
	sort.Strings(files)

	s := New()
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		if err := s.Apply(string(src)); err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
	}
	return s, nil
}

// Apply runs the DDL in src against the schema. Statements that do not parse
// or do not change table shape (inserts, grants, functions) are skipped.
func (s *Schema) Apply(src string) error {
	stmts, err := pgquery.SplitWithParser(src, true)
	if err != nil {
		return fmt.Errorf("split: %w", err)
	}
	for _, sql := range stmts {
		tree, err := pgquery.Parse(sql)
		if err != nil {
			continue
		}
		for _, raw := range tree.GetStmts() {
			node := raw.GetStmt()
			switch {
			case node.GetCreateStmt() != nil:
				s.applyCreateTable(node.GetCreateStmt())
			case node.GetAlterTableStmt() != nil:
				s.applyAlterTable(node.GetAlterTableStmt())
			case node.GetDropStmt() != nil:
				s.applyDropTable(node.GetDropStmt())
			}
		}
	}
	return nil
}

func (s *Schema) applyCreateTable(stmt *pgquery.CreateStmt) {
	rel := stmt.GetRelation()
	if rel.GetRelname() == "" {
		return
	}
	t := s.ensureTable(rel.GetSchemaname(), rel.GetRelname())

	for _, elt := range stmt.GetTableElts() {
		if cd := elt.GetColumnDef(); cd != nil {
			t.addColumn(columnFromDef(t, cd))
			continue
		}
		if cst := elt.GetConstraint(); cst != nil && cst.GetContype() == pgquery.ConstrType_CONSTR_PRIMARY {
			for _, k := range stringList(cst.GetKeys()) {
				t.addPK(k)
			}
		}
	}
}

func (s *Schema) applyAlterTable(stmt *pgquery.AlterTableStmt) {
	rel := stmt.GetRelation()
	t, ok := s.Tables[tableKey(rel.GetSchemaname(), rel.GetRelname())]
	if !ok {
		return
	}
	for _, c := range stmt.GetCmds() {
		cmd := c.GetAlterTableCmd()
		if cmd == nil {
			continue
		}
		switch cmd.GetSubtype() {
		case pgquery.AlterTableType_AT_AddColumn:
			if cd := cmd.GetDef().GetColumnDef(); cd != nil {
				t.addColumn(columnFromDef(t, cd))
			}
		case pgquery.AlterTableType_AT_DropColumn:
			t.dropColumn(cmd.GetName())
		}
	}
}

func (s *Schema) applyDropTable(stmt *pgquery.DropStmt) {
	if stmt.GetRemoveType() != pgquery.ObjectType_OBJECT_TABLE {
		return
	}
	for _, obj := range stmt.GetObjects() {
		parts := stringList(obj.GetList().GetItems())
		switch len(parts) {
		case 1:
			delete(s.Tables, parts[0])
		case 2:
			delete(s.Tables, tableKey(parts[0], parts[1]))
		}
	}
}

// columnFromDef converts a column definition, recording inline PRIMARY KEY
// constraints on t.
func columnFromDef(t *Table, cd *pgquery.ColumnDef) Column {
	c := Column{
		Name:    cd.GetColname(),
		Type:    typeNameToSQL(stringList(cd.GetTypeName().GetNames())),
		NotNull: cd.GetIsNotNull(),
	}
	for _, n := range cd.GetConstraints() {
		switch n.GetConstraint().GetContype() {
		case pgquery.ConstrType_CONSTR_NOTNULL:
			c.NotNull = true
		case pgquery.ConstrType_CONSTR_PRIMARY:
			c.NotNull = true
			t.addPK(c.Name)
		}
	}
	return c
}

// stringList extracts the values of a list of String nodes.
func stringList(nodes []*pgquery.Node) []string {
	var out []string
	for _, n := range nodes {
		if s := n.GetString_(); s != nil {
			out = append(out, s.GetSval())
		}
	}
	return out
}

var catalogTypes = map[string]string{
	"pg_catalog.int2":        "smallint",
	"pg_catalog.int4":        "integer",
	"pg_catalog.int8":        "bigint",
	"pg_catalog.float4":      "real",
	"pg_catalog.float8":      "double precision",
	"pg_catalog.numeric":     "numeric",
	"pg_catalog.varchar":     "varchar",
	"pg_catalog.bpchar":      "char",
	"pg_catalog.bool":        "boolean",
	"pg_catalog.timestamp":   "timestamp",
	"pg_catalog.timestamptz": "timestamp with time zone",
	"int2":                   "smallint",
	"int4":                   "integer",
	"int8":                   "bigint",
	"bool":                   "boolean",
	"timestamptz":            "timestamp with time zone",
}

// typeNameToSQL maps "pg_catalog","int4" (or a bare int4) to integer;
// anything else keeps its last identifier.
func typeNameToSQL(parts []string) string {
	if len(parts) == 0 {
		return "text"
	}
	if t, ok := catalogTypes[strings.Join(parts, ".")]; ok {
		return t
	}
	return parts[len(parts)-1]
}
