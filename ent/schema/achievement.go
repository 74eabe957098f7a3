package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Achievement is a seeded catalog entry. Rows are inserted once and never
// updated.
type Achievement struct {
	ent.Schema
}

func (Achievement) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "achievements"}}
}

func (Achievement) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").Immutable(),
		field.String("name").NotEmpty(),
		field.String("description").Default(""),
		field.String("icon").Default(""),
		field.String("condition").NotEmpty(),
		field.Int("threshold").Positive(),
		field.String("rarity").NotEmpty(),
	}
}

// UserAchievement records an unlock. The unique index makes a second unlock
// of the same achievement a no-op.
type UserAchievement struct {
	ent.Schema
}

func (UserAchievement) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "user_achievements"}}
}

func (UserAchievement) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").Immutable(),
		field.String("achievement_id").Immutable(),
		field.Time("unlocked_at").Immutable(),
	}
}

func (UserAchievement) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "achievement_id").Unique(),
	}
}
