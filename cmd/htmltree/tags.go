package main

import "fmt"

// Run executes the tags command.
func (c *TagsCmd) Run(deps *Dependencies) error {
	for _, tag := range deps.Irrelevant.Tags() {
		fmt.Fprintln(deps.Stdout, tag)
	}
	return nil
}
