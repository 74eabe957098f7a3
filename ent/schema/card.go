package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Card is a flashcard owned by one user.
type Card struct {
	ent.Schema
}

func (Card) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "cards"}}
}

func (Card) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").Immutable(),
		field.String("user_id").Immutable(),
		field.String("front").NotEmpty(),
		field.String("back").NotEmpty(),
		field.Time("created_at").Immutable(),
	}
}

func (Card) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id"),
	}
}

// CardReview is one rated answer. The most recent reviews of a card give
// its rolling difficulty.
type CardReview struct {
	ent.Schema
}

func (CardReview) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "card_reviews"}}
}

func (CardReview) Mixin() []ent.Mixin {
	return []ent.Mixin{SequenceMixin{}}
}

func (CardReview) Fields() []ent.Field {
	return []ent.Field{
		field.String("card_id").Immutable(),
		field.String("session_id").Immutable(),
		field.Int("rating").Range(1, 5).Immutable(),
		field.Int("xp").NonNegative().Immutable(),
		field.Time("reviewed_at").Immutable(),
	}
}

func (CardReview) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("card_id", "sequence"),
	}
}
