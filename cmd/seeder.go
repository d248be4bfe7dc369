package cmd

import (
	"fmt"
	"log"

	"github.com/mercadinho/gestao/internal/auth"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with initial data",
	Long:  `Seed the database with the initial categories and an admin user for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlxDB.Close()

		db, err := initGorm(sqlxDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"venda", "produtos", "categoria", "cliente", "fornecedor", "funcionario"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Existing data cleared")
		}

		categories := []struct {
			ID   int64
			Name string
		}{
			{1, "Perecíveis"},
			{2, "Bebidas"},
			{3, "Verduras"},
			{4, "Frutas"},
		}

		for _, c := range categories {
			var exists int
			row := db.Raw("SELECT 1 FROM categoria WHERE id = ?", c.ID).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO categoria (id, nome) VALUES (?, ?)", c.ID, c.Name).Error; err != nil {
				log.Fatalf("failed to insert category %s: %v", c.Name, err)
			}
			fmt.Printf("Seeded category: %s\n", c.Name)
		}

		// Keep the sequence ahead of the fixed ids inserted above.
		if err := db.Exec("SELECT setval('categoria_id_seq', (SELECT MAX(id) FROM categoria))").Error; err != nil {
			log.Fatalf("failed to advance category sequence: %v", err)
		}

		adminEmail := "admin@email.com"
		var exists int
		row := db.Raw("SELECT 1 FROM usuario WHERE email = ?", adminEmail).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("admin user already exists")
			return
		}

		hasher := auth.NewPasswordHasher(
			cfg.Security.Argon2Memory,
			cfg.Security.Argon2Iterations,
			cfg.Security.Argon2Threads,
		)
		hash, err := hasher.Hash("admin123")
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}

		if err := db.Exec("INSERT INTO usuario (nome, email, senha_hash) VALUES (?, ?, ?)", "Admin", adminEmail, hash).Error; err != nil {
			log.Fatalf("failed to insert admin user: %v", err)
		}
		fmt.Println("Seeded admin user:", adminEmail)
	},
}
