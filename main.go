package main

import "github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/cmd"

func main() {
	cmd.Execute()
}
