package main

func (cli *commandLine) migrate(args []string) error {
	m, ok := cli.store.(migrator)
	if !ok {
		return errNoSQLRun
	}
	return m.Migrate(args[0], args[1:]...)
}
