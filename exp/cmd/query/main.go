package main

import (
	"encoding/json"
	"exp/internal/db"
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	dbPath := flag.String("db", "./tmp/sweep/sweep.db", "Path to database file")
	queryType := flag.String("query", "stats", "Query type: stats, datasets, best-params, coefficients, trials, raw")
	dataset := flag.String("dataset", "", "Dataset name for coefficients and trials")
	minWinRate := flag.Float64("min-win", 0.8, "Minimum PSO win rate for best params")
	rawSQL := flag.String("sql", "", "Raw SQL query to execute")

	flag.Parse()

	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	switch *queryType {
	case "stats":
		count, err := database.CountTrials()
		if err != nil {
			log.Fatalf("Failed to count trials: %v", err)
		}
		fmt.Printf("Total trials: %d\n", count)

	case "datasets":
		stats, err := database.GetDatasetStats()
		if err != nil {
			log.Fatalf("Failed to get dataset stats: %v", err)
		}
		printJSON(stats)

	case "best-params":
		stats, err := database.GetBestParameters(*minWinRate)
		if err != nil {
			log.Fatalf("Failed to get best parameters: %v", err)
		}
		printJSON(stats)

	case "coefficients", "trials":
		if *dataset == "" {
			log.Fatal("Please provide a dataset with -dataset flag")
		}
		if _, err := database.GetDataset(*dataset); err != nil {
			log.Fatalf("Unknown dataset %s: %v", *dataset, err)
		}
		if *queryType == "trials" {
			trials, err := database.GetTrialsByDataset(*dataset)
			if err != nil {
				log.Fatalf("Failed to get trials: %v", err)
			}
			printJSON(trials)
			break
		}
		stats, err := database.GetCoefficientStats(*dataset)
		if err != nil {
			log.Fatalf("Failed to get coefficient stats: %v", err)
		}
		printJSON(stats)

	case "raw":
		if *rawSQL == "" {
			log.Fatal("Please provide SQL query with -sql flag")
		}
		rows, err := database.ExecuteRawQuery(*rawSQL)
		if err != nil {
			log.Fatalf("Failed to execute query: %v", err)
		}
		defer rows.Close()

		cols, err := rows.Columns()
		if err != nil {
			log.Fatalf("Failed to get columns: %v", err)
		}

		fmt.Println("Columns:", cols)
		for rows.Next() {
			values := make([]any, len(cols))
			valuePtrs := make([]any, len(cols))
			for i := range values {
				valuePtrs[i] = &values[i]
			}

			if err := rows.Scan(valuePtrs...); err != nil {
				log.Fatalf("Failed to scan row: %v", err)
			}

			for i, col := range cols {
				fmt.Printf("%s: %v\n", col, values[i])
			}
			fmt.Println("---")
		}

	default:
		log.Fatalf("Unknown query type: %s", *queryType)
	}
}

func printJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		log.Fatalf("Failed to encode JSON: %v", err)
	}
}
