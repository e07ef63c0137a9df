/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/EO-DataHub/eodhp-users-dashboard/cmd"

func main() {
	cmd.Execute()
}
