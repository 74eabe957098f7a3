package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// The tables below are the migration form of the definitions in ent/schema;
// TestTablesMatchEntSchema keeps the two in step.
var (
	// UsersColumns holds the columns for the "users" table.
	UsersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "name", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeTime},
	}
	// UsersTable holds the schema information for the "users" table.
	UsersTable = &schema.Table{
		Name:       "users",
		Columns:    UsersColumns,
		PrimaryKey: []*schema.Column{UsersColumns[0]},
		Indexes: []*schema.Index{
			{Name: "user_name", Unique: true, Columns: []*schema.Column{UsersColumns[1]}},
		},
	}

	// UserStatsColumns holds the columns for the "user_stats" table.
	UserStatsColumns = []*schema.Column{
		{Name: "user_id", Type: field.TypeString, Unique: true},
		{Name: "total_xp", Type: field.TypeInt, Default: 0},
		{Name: "current_streak", Type: field.TypeInt, Default: 0},
		{Name: "best_streak", Type: field.TypeInt, Default: 0},
		{Name: "last_study_date", Type: field.TypeTime, Nullable: true},
		{Name: "study_seconds", Type: field.TypeInt64, Default: 0},
		{Name: "cards_studied", Type: field.TypeInt, Default: 0},
		{Name: "cards_created", Type: field.TypeInt, Default: 0},
		{Name: "perfect_streak", Type: field.TypeInt, Default: 0},
		{Name: "joined_at", Type: field.TypeTime},
		{Name: "version", Type: field.TypeInt64, Default: 0},
	}
	// UserStatsTable holds the schema information for the "user_stats" table.
	UserStatsTable = &schema.Table{
		Name:       "user_stats",
		Columns:    UserStatsColumns,
		PrimaryKey: []*schema.Column{UserStatsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "user_stats_users_stats",
				Columns:    []*schema.Column{UserStatsColumns[0]},
				RefColumns: []*schema.Column{UsersColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "userstats_last_study_date", Columns: []*schema.Column{UserStatsColumns[4]}},
		},
	}

	// CardsColumns holds the columns for the "cards" table.
	CardsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "front", Type: field.TypeString},
		{Name: "back", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeTime},
	}
	// CardsTable holds the schema information for the "cards" table.
	CardsTable = &schema.Table{
		Name:       "cards",
		Columns:    CardsColumns,
		PrimaryKey: []*schema.Column{CardsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "cards_users_cards",
				Columns:    []*schema.Column{CardsColumns[1]},
				RefColumns: []*schema.Column{UsersColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "card_user_id", Columns: []*schema.Column{CardsColumns[1]}},
		},
	}

	// CardReviewsColumns holds the columns for the "card_reviews" table.
	CardReviewsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "card_id", Type: field.TypeString},
		{Name: "session_id", Type: field.TypeString},
		{Name: "rating", Type: field.TypeInt},
		{Name: "xp", Type: field.TypeInt},
		{Name: "reviewed_at", Type: field.TypeTime},
	}
	// CardReviewsTable holds the schema information for the "card_reviews" table.
	CardReviewsTable = &schema.Table{
		Name:       "card_reviews",
		Columns:    CardReviewsColumns,
		PrimaryKey: []*schema.Column{CardReviewsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "card_reviews_cards_reviews",
				Columns:    []*schema.Column{CardReviewsColumns[2]},
				RefColumns: []*schema.Column{CardsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "cardreview_card_id_sequence", Columns: []*schema.Column{CardReviewsColumns[2], CardReviewsColumns[1]}},
		},
	}

	// AchievementsColumns holds the columns for the "achievements" table.
	AchievementsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "name", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Default: ""},
		{Name: "icon", Type: field.TypeString, Default: ""},
		{Name: "condition", Type: field.TypeString},
		{Name: "threshold", Type: field.TypeInt},
		{Name: "rarity", Type: field.TypeString},
	}
	// AchievementsTable holds the schema information for the "achievements" table.
	AchievementsTable = &schema.Table{
		Name:       "achievements",
		Columns:    AchievementsColumns,
		PrimaryKey: []*schema.Column{AchievementsColumns[0]},
	}

	// UserAchievementsColumns holds the columns for the "user_achievements" table.
	UserAchievementsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "achievement_id", Type: field.TypeString},
		{Name: "unlocked_at", Type: field.TypeTime},
	}
	// UserAchievementsTable holds the schema information for the "user_achievements" table.
	UserAchievementsTable = &schema.Table{
		Name:       "user_achievements",
		Columns:    UserAchievementsColumns,
		PrimaryKey: []*schema.Column{UserAchievementsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "user_achievements_users_achievements",
				Columns:    []*schema.Column{UserAchievementsColumns[1]},
				RefColumns: []*schema.Column{UsersColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "user_achievements_achievements_unlocks",
				Columns:    []*schema.Column{UserAchievementsColumns[2]},
				RefColumns: []*schema.Column{AchievementsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{Name: "userachievement_user_id_achievement_id", Unique: true, Columns: []*schema.Column{UserAchievementsColumns[1], UserAchievementsColumns[2]}},
		},
	}

	// XPLedgerColumns holds the columns for the "xp_ledger" table.
	XPLedgerColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "source", Type: field.TypeString},
		{Name: "ref", Type: field.TypeString, Default: ""},
		{Name: "amount", Type: field.TypeInt},
		{Name: "day", Type: field.TypeString},
		{Name: "earned_at", Type: field.TypeTime},
	}
	// XPLedgerTable holds the schema information for the "xp_ledger" table.
	XPLedgerTable = &schema.Table{
		Name:       "xp_ledger",
		Columns:    XPLedgerColumns,
		PrimaryKey: []*schema.Column{XPLedgerColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "xp_ledger_users_ledger",
				Columns:    []*schema.Column{XPLedgerColumns[2]},
				RefColumns: []*schema.Column{UsersColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "xpledger_user_id_day", Columns: []*schema.Column{XPLedgerColumns[2], XPLedgerColumns[6]}},
		},
	}

	// NotificationsColumns holds the columns for the "notifications" table.
	NotificationsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "achievement_id", Type: field.TypeString, Nullable: true},
		{Name: "title", Type: field.TypeString},
		{Name: "body", Type: field.TypeString, Default: ""},
		{Name: "icon", Type: field.TypeString, Default: ""},
		{Name: "rarity", Type: field.TypeString, Default: ""},
		{Name: "bonus_xp", Type: field.TypeInt, Default: 0},
		{Name: "created_at", Type: field.TypeTime},
	}
	// NotificationsTable holds the schema information for the "notifications" table.
	NotificationsTable = &schema.Table{
		Name:       "notifications",
		Columns:    NotificationsColumns,
		PrimaryKey: []*schema.Column{NotificationsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "notifications_users_inbox",
				Columns:    []*schema.Column{NotificationsColumns[1]},
				RefColumns: []*schema.Column{UsersColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "notification_user_id_created_at", Columns: []*schema.Column{NotificationsColumns[1], NotificationsColumns[9]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		UsersTable,
		UserStatsTable,
		CardsTable,
		CardReviewsTable,
		AchievementsTable,
		UserAchievementsTable,
		XPLedgerTable,
		NotificationsTable,
	}
)

func init() {
	UserStatsTable.ForeignKeys[0].RefTable = UsersTable
	CardsTable.ForeignKeys[0].RefTable = UsersTable
	CardReviewsTable.ForeignKeys[0].RefTable = CardsTable
	UserAchievementsTable.ForeignKeys[0].RefTable = UsersTable
	UserAchievementsTable.ForeignKeys[1].RefTable = AchievementsTable
	XPLedgerTable.ForeignKeys[0].RefTable = UsersTable
	NotificationsTable.ForeignKeys[0].RefTable = UsersTable
}

// migrate creates or upgrades every table through ent's schema migrator.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
