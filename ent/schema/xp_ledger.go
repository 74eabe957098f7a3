package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// XPLedger is one XP award after the daily cap. Summing a user's entries
// for a UTC day gives the XP earned that day.
type XPLedger struct {
	ent.Schema
}

func (XPLedger) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "xp_ledger"}}
}

func (XPLedger) Mixin() []ent.Mixin {
	return []ent.Mixin{SequenceMixin{}}
}

func (XPLedger) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").Immutable(),
		field.String("source").NotEmpty().Immutable(),
		field.String("ref").Default("").Immutable(),
		field.Int("amount").NonNegative().Immutable(),
		field.String("day").
			Immutable().
			Comment("UTC day key, YYYY-MM-DD"),
		field.Time("earned_at").Immutable(),
	}
}

func (XPLedger) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "day"),
	}
}
