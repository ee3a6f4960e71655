// Command vizscript runs visualization command scripts.
package main

func main() {
	Execute()
}
