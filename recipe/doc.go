// Package recipe loads cultivation recipes and converts their step lists
// into scheduler input.
//
// Recipes are YAML or JSON documents:
//
//	name: monotub-3-5lb
//	includes: [grain-prep]
//	steps:
//	  - key: spawn
//	    title: Spawn to bulk
//	    duration: 14d
//	    depends_on: [inoc]
//
// A step's duration is either a number of minutes or a token such as "2h";
// Duration keeps which form was written and resolves it to minutes only when
// the recipe is handed to the scheduler.
package recipe
