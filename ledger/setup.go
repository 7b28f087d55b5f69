// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2022 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/omcash/omcash/account"
	"github.com/omcash/omcash/fault"
	"github.com/omcash/omcash/transactionrecord"
	"github.com/omcash/omcash/util"
)

// file names below a chain root
const (
	OwnerPublicKeyFile  = "owner.public"
	OwnerPrivateKeyFile = "owner.private"
	AuthorPublicKeyFile = "author.public"
	databaseName        = "chain.leveldb"
)

// author of the cash contract installed in every chain unless setup
// is given another author key; every party must use the same author
// or the author set of a trade would shrink
const CashContractAuthor = "QSazUGw29WPh2RkeLzqq285NPtDaoj3Uuw8ZnUc24ea"

// the database pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Blocks       *poolHandle `prefix:"B"`
	Transactions *poolHandle `prefix:"T"`
	Status       *poolHandle `prefix:"S"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// Ledger - an open chain
//
// safe for concurrent use; appends are serialised
type Ledger struct {
	sync.RWMutex

	log               *logger.L
	root              string
	contractDirectory string
	owner             *account.Account
	database          *leveldb.DB
	pool              pools
	transactions      *cache.Cache
	now               func() time.Time
}

// Create - set up a new chain below root
//
// makes the owner key pair, installs the contract author key
// (CashContractAuthor unless authorKeyFile names a public key file)
// and writes the signed genesis block
func Create(root string, contractDirectory string, authorKeyFile string) (*account.PrivateKey, error) {
	if "" == contractDirectory {
		contractDirectory = transactionrecord.CashContractDirectory
	}

	if util.EnsureFileExists(filepath.Join(root, databaseName)) {
		return nil, fault.ErrChainExists
	}

	contractPath := filepath.Join(root, contractDirectory)
	if err := os.MkdirAll(contractPath, 0o755); nil != err {
		return nil, errors.Wrapf(err, "create contract directory: %q", contractPath)
	}

	privateKey, err := account.MakeKeyPair(filepath.Join(root, OwnerPublicKeyFile), filepath.Join(root, OwnerPrivateKeyFile))
	if nil != err {
		return nil, errors.Wrap(err, "owner key pair")
	}

	var author *account.Account
	if "" == authorKeyFile {
		author, err = account.AccountFromBase58(CashContractAuthor)
	} else {
		author, err = account.ReadPublicKeyFile(authorKeyFile)
	}
	if nil == err {
		err = account.WritePublicKeyFile(filepath.Join(contractPath, AuthorPublicKeyFile), author)
	}
	if nil != err {
		return nil, errors.Wrap(err, "contract author key")
	}

	db, _, err := getDB(filepath.Join(root, databaseName), false)
	if nil != err {
		return nil, err
	}
	defer db.Close()

	genesis := &Block{
		Number:    0,
		Timestamp: time.Now().Unix(),
		Owner:     privateKey.Account().Fingerprint(),
		Actions:   []transactionrecord.Action{},
	}
	genesis.sign(privateKey)

	l := &Ledger{database: db}
	if err := l.initPools(); nil != err {
		return nil, err
	}
	value, err := encodeBlock(genesis)
	if nil != err {
		return nil, err
	}

	batch := new(leveldb.Batch)
	l.pool.Blocks.put(batch, blockKey(0), value)
	batch.Put(versionKey, versionBytes(currentDBVersion))
	if err := db.Write(batch, nil); nil != err {
		return nil, errors.Wrap(err, "write genesis block")
	}

	return privateKey, nil
}

// chains open in this process by absolute root, so a chain can read
// another participant's status without a second database handle
var registry = struct {
	sync.Mutex
	chains map[string]*Ledger
}{
	chains: make(map[string]*Ledger),
}

// Open - open the chain below root
func Open(root string, contractDirectory string) (*Ledger, error) {
	if "" == contractDirectory {
		contractDirectory = transactionrecord.CashContractDirectory
	}

	root, err := filepath.Abs(root)
	if nil != err {
		return nil, errors.Wrap(err, "chain root")
	}

	databasePath := filepath.Join(root, databaseName)
	if !util.EnsureFileExists(databasePath) {
		return nil, fault.ErrChainNotFound
	}

	owner, err := account.ReadPublicKeyFile(filepath.Join(root, OwnerPublicKeyFile))
	if nil != err {
		return nil, errors.Wrapf(err, "owner key of: %q", root)
	}

	db, version, err := getDB(databasePath, false)
	if nil != err {
		return nil, err
	}
	if version > currentDBVersion {
		db.Close()
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}

	l := &Ledger{
		log:               logger.New("ledger"),
		root:              root,
		contractDirectory: contractDirectory,
		owner:             owner,
		database:          db,
		transactions:      cache.New(time.Hour, 2*time.Hour),
		now:               time.Now,
	}
	if err := l.initPools(); nil != err {
		db.Close()
		return nil, err
	}

	registry.Lock()
	registry.chains[root] = l
	registry.Unlock()

	l.log.Infof("opened chain: %q  owner: %s", root, owner.Fingerprint())
	return l, nil
}

// run f on the chain at root, opening it for the call if it is not
// already open in this process
func withChain(root string, contractDirectory string, f func(l *Ledger) error) error {
	root, err := filepath.Abs(root)
	if nil != err {
		return errors.Wrap(err, "chain root")
	}

	registry.Lock()
	l, ok := registry.chains[root]
	registry.Unlock()
	if ok {
		return f(l)
	}

	l, err = Open(root, contractDirectory)
	if nil != err {
		return err
	}
	defer l.Close()
	return f(l)
}

// Close - close the database
func (l *Ledger) Close() {
	l.Lock()
	defer l.Unlock()
	if nil != l.database {
		l.database.Close()
		l.database = nil
		l.log.Infof("closed chain: %q", l.root)
	}

	registry.Lock()
	if registry.chains[l.root] == l {
		delete(registry.chains, l.root)
	}
	registry.Unlock()
}

// Root - the chain root directory
func (l *Ledger) Root() string {
	return l.root
}

// scan the pools struct and give each field its prefix
func (l *Ledger) initPools() error {

	// this will be a struct type
	poolType := reflect.TypeOf(l.pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&l.pool).Elem()

	for i := 0; i < poolType.NumField(); i += 1 {
		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &poolHandle{
			prefix:   prefix,
			limit:    limit,
			database: l.database,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, errors.Wrapf(err, "open database: %q", name)
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, errors.Wrap(err, "read database version")
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func versionBytes(version int) []byte {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))
	return currentVersion
}
