package demo

import (
	"context"
	"fmt"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const sqlChatPrompt = `
You are an expert SQL analyst.
For all questions, you will use only the tools provided to you to answer the question, and no prior knowledge.
For all questions, your database connection string is: %q.
The SQL dialect is %q.
If a tool call requires a schema, and one has not been provided, assume the schema is %q.
If a tool call produces a response with multiple entries, format your response as a markdown list, one per line.
`

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// SqlChat lists the Sql toolkit, then asks the service to discover tables,
// describe the users and messages tables, and answer three questions using
// those descriptions.
func (d *Demo) SqlChat(ctx context.Context) error {
	system := fmt.Sprintf(sqlChatPrompt, d.connStr, d.dialect, d.schema)

	if err := d.listTools(ctx, "sql"); err != nil {
		return err
	}

	d.out.Printf("\n⚙️ testing `Sql.DiscoverTables`\n\n")
	if _, err := d.chat(ctx, system, "Discover all the tables in the database", "Sql.DiscoverTables"); err != nil {
		return err
	}

	d.out.Printf("\n⚙️ testing `Sql.GetTableSchema`\n\n")
	users, err := d.chat(ctx, system, "Get the schema of the table `users`", "Sql.GetTableSchema")
	if err != nil {
		return err
	}
	messages, err := d.chat(ctx, system, "Get the schema of the table `messages`", "Sql.GetTableSchema")
	if err != nil {
		return err
	}
	usersSchema, messagesSchema := users.FirstContent(), messages.FirstContent()

	d.out.Printf("\n⚙️ testing `Sql.ExecuteQuery`\n\n")
	for _, question := range []string{
		fmt.Sprintf("Get the first 10 user's names.  Additional context about the user's table: %s", usersSchema),
		fmt.Sprintf("Count how many users there are.  Additional context about the user's table: %s", usersSchema),
		fmt.Sprintf("How many messages has each user sent?  Group by user id and name.  Additional context about the user's table: %s.  Additional context about the messages table: %s", usersSchema, messagesSchema),
	} {
		if _, err := d.chat(ctx, system, question, "Sql.ExecuteQuery"); err != nil {
			return err
		}
	}

	return nil
}
