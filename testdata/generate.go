package main

import (
	"fmt"
	"log"
	"os"
	"strings"
)

type account struct {
	ID      string
	Name    string
	City    string
	Balance string
}

const layoutJSON = `[
  {"name": "id", "start": 0, "length": 4},
  {"name": "name", "start": 4, "length": 16},
  {"name": "city", "start": 20, "length": 12},
  {"name": "balance", "start": 32, "length": 10}
]
`

const layoutTOML = `[[field]]
name = "id"
start = 0
length = 4

[[field]]
name = "name"
start = 4
length = 16

[[field]]
name = "city"
start = 20
length = 12

[[field]]
name = "balance"
start = 32
length = 10
`

func main() {
	accounts := []account{
		{ID: "0001", Name: "Alice Smith", City: "Boston", Balance: "1250.00"},
		{ID: "0002", Name: `Bob "Bobby" Lee`, City: "Chicago", Balance: "-42.10"},
		{ID: "0003", Name: "Doe, Jane", City: "São Paulo", Balance: "0.00"},
	}

	var b strings.Builder
	for _, a := range accounts {
		// fmt pads by rune, matching the default offset unit
		fmt.Fprintf(&b, "%-4s%-16s%-12s%10s\n", a.ID, a.Name, a.City, a.Balance)
	}
	// A short record: everything past the name is missing
	b.WriteString("0005Short\n")

	files := map[string]string{
		"accounts.txt":  b.String(),
		"accounts.json": layoutJSON,
		"accounts.toml": layoutTOML,
	}
	for name, content := range files {
		if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Generated accounts.txt with 4 records and its layouts")
}
