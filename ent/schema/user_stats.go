package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// UserStats holds the gamification counters of one user. Version is the
// optimistic lock token checked on every save.
type UserStats struct {
	ent.Schema
}

func (UserStats) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "user_stats"}}
}

func (UserStats) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("user_id").
			Immutable(),
		field.Int("total_xp").Default(0).NonNegative(),
		field.Int("current_streak").Default(0).NonNegative(),
		field.Int("best_streak").Default(0).NonNegative(),
		field.Time("last_study_date").
			Optional().
			Nillable().
			Comment("UTC calendar date of the last session"),
		field.Int64("study_seconds").Default(0).NonNegative(),
		field.Int("cards_studied").Default(0).NonNegative(),
		field.Int("cards_created").Default(0).NonNegative(),
		field.Int("perfect_streak").Default(0).NonNegative(),
		field.Time("joined_at").Immutable(),
		field.Int64("version").Default(0),
	}
}

func (UserStats) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("last_study_date"),
	}
}
