package store

import (
	"fmt"
	"strings"
	"testing"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"
	"github.com/stretchr/testify/assert"

	entschema "github.com/abhisek/flashiz/ent/schema"
)

type entDefinition interface {
	Fields() []ent.Field
	Indexes() []ent.Index
	Mixin() []ent.Mixin
}

// The migration tables are written by hand; they must describe the same
// columns and indexes as the ent schema definitions.
func TestTablesMatchEntSchema(t *testing.T) {
	tests := []struct {
		table *schema.Table
		def   entDefinition
	}{
		{UsersTable, entschema.User{}},
		{UserStatsTable, entschema.UserStats{}},
		{CardsTable, entschema.Card{}},
		{CardReviewsTable, entschema.CardReview{}},
		{AchievementsTable, entschema.Achievement{}},
		{UserAchievementsTable, entschema.UserAchievement{}},
		{XPLedgerTable, entschema.XPLedger{}},
		{NotificationsTable, entschema.Notification{}},
	}
	assert.Len(t, Tables, len(tests))

	for _, tt := range tests {
		t.Run(tt.table.Name, func(t *testing.T) {
			var fields []ent.Field
			for _, m := range tt.def.Mixin() {
				fields = append(fields, m.Fields()...)
			}
			fields = append(fields, tt.def.Fields()...)

			columns := make(map[string]*schema.Column, len(tt.table.Columns))
			for _, c := range tt.table.Columns {
				columns[c.Name] = c
			}

			seen := make(map[string]bool, len(fields))
			for _, f := range fields {
				d := f.Descriptor()
				name := d.Name
				if d.StorageKey != "" {
					name = d.StorageKey
				}
				seen[name] = true

				col, ok := columns[name]
				if !assert.True(t, ok, "no column for field %s", name) {
					continue
				}
				assert.Equal(t, col.Type, d.Info.Type, "type of %s", name)
				assert.Equal(t, col.Nullable, d.Optional, "nullability of %s", name)
				if d.Name != "id" {
					assert.Equal(t, col.Unique, d.Unique, "uniqueness of %s", name)
				}
			}
			for name, col := range columns {
				if name == "id" && col.Increment {
					// ent adds the auto-increment id itself.
					continue
				}
				assert.True(t, seen[name], "column %s has no ent field", name)
			}

			var want, got []string
			for _, idx := range tt.table.Indexes {
				names := make([]string, 0, len(idx.Columns))
				for _, c := range idx.Columns {
					names = append(names, c.Name)
				}
				want = append(want, fmt.Sprintf("unique=%v %s", idx.Unique, strings.Join(names, ",")))
			}
			for _, idx := range tt.def.Indexes() {
				d := idx.Descriptor()
				got = append(got, fmt.Sprintf("unique=%v %s", d.Unique, strings.Join(d.Fields, ",")))
			}
			assert.ElementsMatch(t, want, got)
		})
	}
}
