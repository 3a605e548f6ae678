package models

import "gorm.io/gorm"

// All returns every entity in dependency order. The relationship graph
// (foreign keys, cascade rules, join tables) is declared on the structs and
// materialized once at startup by Migrate.
func All() []any {
	return []any{
		&College{},
		&User{},
		&Profile{},
		&Company{},
		&Tag{},
		&CompanyTag{},
		&Skill{},
		&UserSkill{},
		&Experience{},
		&Post{},
		&Like{},
		&Comment{},
		&Portfolio{},
		&SupportTicket{},
		&TicketComment{},
	}
}

// Migrate wires the explicit join models and creates/updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&User{}, "Skills", &UserSkill{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&Company{}, "Tags", &CompanyTag{}); err != nil {
		return err
	}
	return db.AutoMigrate(All()...)
}
