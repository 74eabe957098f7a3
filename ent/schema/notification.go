package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Notification is the inbox copy of a delivered event.
type Notification struct {
	ent.Schema
}

func (Notification) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "notifications"}}
}

func (Notification) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").Immutable(),
		field.String("kind").NotEmpty(),
		field.String("achievement_id").Optional().Nillable(),
		field.String("title").NotEmpty(),
		field.String("body").Default(""),
		field.String("icon").Default(""),
		field.String("rarity").Default(""),
		field.Int("bonus_xp").Default(0),
		field.Time("created_at").Immutable(),
	}
}

func (Notification) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "created_at"),
	}
}
