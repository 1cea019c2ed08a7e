package persist

// Persistable is a set of rows that knows how to write itself.
type Persistable interface {
	Persist(tx Transaction) error
}

// Transaction is satisfied by gorp executors and transactions.
type Transaction interface {
	Insert(list ...interface{}) error
}
