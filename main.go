// @title						Deck Builder API
// @version					1.0
// @description				Spell deck building backend: decks, composition sessions with autosave, catalog.
// @BasePath					/api/v1
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
package main

import "deckbuilder/cmd"

func main() {
	cmd.Execute()
}
