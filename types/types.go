package types

type (
	// HeadSummary describes the chain head as reported by the node's beat
	// subscription or status endpoint. Obsolete marks a summary that belongs
	// to a branch no longer on the trunk (observed during a reorganization).
	HeadSummary struct {
		ID        Bytes32 `json:"id"`
		Number    uint32  `json:"number"`
		ParentID  Bytes32 `json:"parentID"`
		Timestamp uint64  `json:"timestamp"`
		GasLimit  uint64  `json:"gasLimit"`
		Obsolete  bool    `json:"obsolete"`
	}

	// Status is the node's view of chain synchronization progress.
	Status struct {
		Progress  float64     `json:"progress"`
		Head      HeadSummary `json:"head"`
		Finalized Bytes32     `json:"finalized"`
	}

	// Account is the state of an account at a given revision.
	Account struct {
		Balance Quantity `json:"balance"`
		Energy  Quantity `json:"energy"`
		HasCode bool     `json:"hasCode"`
	}

	// Block is a block header plus the ids of the transactions it contains.
	// IsTrunk reports whether the block currently belongs to the canonical
	// chain; it can flip if the chain reorganizes.
	Block struct {
		ID           Bytes32   `json:"id"`
		Number       uint32    `json:"number"`
		ParentID     Bytes32   `json:"parentID"`
		Timestamp    uint64    `json:"timestamp"`
		GasLimit     uint64    `json:"gasLimit"`
		GasUsed      uint64    `json:"gasUsed"`
		TotalScore   uint64    `json:"totalScore"`
		TxsRoot      Bytes32   `json:"txsRoot"`
		StateRoot    Bytes32   `json:"stateRoot"`
		ReceiptsRoot Bytes32   `json:"receiptsRoot"`
		Signer       Address   `json:"signer"`
		IsTrunk      bool      `json:"isTrunk"`
		IsFinalized  bool      `json:"isFinalized"`
		Transactions []Bytes32 `json:"transactions"`
	}

	// Clause is one atomic unit of a transaction: an optional recipient
	// (nil means contract creation), a value, and a data payload.
	Clause struct {
		To    *Address `json:"to"`
		Value Quantity `json:"value"`
		Data  HexData  `json:"data"`
	}

	// TxMeta stamps which block included a transaction. It is absent while
	// the transaction is pending and populated once mined.
	TxMeta struct {
		BlockID        Bytes32 `json:"blockID"`
		BlockNumber    uint32  `json:"blockNumber"`
		BlockTimestamp uint64  `json:"blockTimestamp"`
	}

	// Transaction is a chain transaction, immutable once included.
	Transaction struct {
		ID           Bytes32  `json:"id"`
		Origin       Address  `json:"origin"`
		Delegator    *Address `json:"delegator"`
		ChainTag     byte     `json:"chainTag"`
		BlockRef     string   `json:"blockRef"`
		Expiration   uint32   `json:"expiration"`
		Clauses      []Clause `json:"clauses"`
		GasPriceCoef uint8    `json:"gasPriceCoef"`
		Gas          uint64   `json:"gas"`
		DependsOn    *Bytes32 `json:"dependsOn"`
		Nonce        Quantity `json:"nonce"`
		Size         uint32   `json:"size"`
		Meta         *TxMeta  `json:"meta"`
	}

	// LogMeta stamps a confirmed log entry with its position in the chain
	// and the transaction that produced it.
	LogMeta struct {
		BlockID        Bytes32 `json:"blockID"`
		BlockNumber    uint32  `json:"blockNumber"`
		BlockTimestamp uint64  `json:"blockTimestamp"`
		TxID           Bytes32 `json:"txID"`
		TxOrigin       Address `json:"txOrigin"`
		ClauseIndex    uint32  `json:"clauseIndex"`
	}

	// Event is a contract-emitted log entry.
	Event struct {
		Address Address   `json:"address"`
		Topics  []Bytes32 `json:"topics"`
		Data    HexData   `json:"data"`
		Meta    LogMeta   `json:"meta"`
	}

	// Transfer is a value-movement log entry.
	Transfer struct {
		Sender    Address  `json:"sender"`
		Recipient Address  `json:"recipient"`
		Amount    Quantity `json:"amount"`
		Meta      LogMeta  `json:"meta"`
	}

	// Output carries the events and transfers produced by one clause of a
	// transaction, plus the created contract address when the clause
	// deployed one.
	Output struct {
		ContractAddress *Address   `json:"contractAddress"`
		Events          []Event    `json:"events"`
		Transfers       []Transfer `json:"transfers"`
	}

	// Receipt is the execution record of a transaction. Outputs parallels
	// the transaction's clauses; Reverted flags whole-transaction failure.
	// Meta is absent until the transaction is mined.
	Receipt struct {
		GasUsed  uint64   `json:"gasUsed"`
		GasPayer Address  `json:"gasPayer"`
		Paid     Quantity `json:"paid"`
		Reward   Quantity `json:"reward"`
		Reverted bool     `json:"reverted"`
		Outputs  []Output `json:"outputs"`
		Meta     *TxMeta  `json:"meta"`
	}

	// VMOutput is the simulated execution result of one clause. A reverted
	// clause is a normal result, not an error: Reverted and VMError describe
	// what the VM did.
	VMOutput struct {
		Data      HexData    `json:"data"`
		Events    []Event    `json:"events"`
		Transfers []Transfer `json:"transfers"`
		GasUsed   uint64     `json:"gasUsed"`
		Reverted  bool       `json:"reverted"`
		VMError   string     `json:"vmError"`
	}

	// EventCriteria is a sparse conjunctive predicate over event logs: every
	// present field must match. Topic positions follow the chain's
	// topic0..topic4 scheme, topic0 being the event signature hash.
	EventCriteria struct {
		Address *Address `json:"address,omitempty"`
		Topic0  *Bytes32 `json:"topic0,omitempty"`
		Topic1  *Bytes32 `json:"topic1,omitempty"`
		Topic2  *Bytes32 `json:"topic2,omitempty"`
		Topic3  *Bytes32 `json:"topic3,omitempty"`
		Topic4  *Bytes32 `json:"topic4,omitempty"`
	}

	// TransferCriteria is a sparse conjunctive predicate over transfer logs.
	TransferCriteria struct {
		TxOrigin  *Address `json:"txOrigin,omitempty"`
		Sender    *Address `json:"sender,omitempty"`
		Recipient *Address `json:"recipient,omitempty"`
	}
)

// WithTopic returns a copy of the criteria with the topic at the given
// position (0..4) set. Out-of-range positions leave the criteria unchanged.
func (c EventCriteria) WithTopic(pos int, topic Bytes32) EventCriteria {
	switch pos {
	case 0:
		c.Topic0 = &topic
	case 1:
		c.Topic1 = &topic
	case 2:
		c.Topic2 = &topic
	case 3:
		c.Topic3 = &topic
	case 4:
		c.Topic4 = &topic
	}
	return c
}
