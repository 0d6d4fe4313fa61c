// Package signer 提供 Cardano 交易签名能力
//
// 签名器可以由 BIP39 助记词、bech32 根私钥或 cardano-cli 签名密钥构造，
// 派生路径遵循 CIP-1852（默认 m/1852'/1815'/0'/0/0）。
//
// # 基本用法
//
//	s, err := signer.NewMnemonicSigner(mnemonic, signer.DefaultPath)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	publicKey, err := s.GetPublicKey()
//	signedTx, err := s.SignTransaction(txHex)
//
// SignTransaction 返回在见证集合中追加了本账户 vkey 见证的完整交易（十六进制）。
//
// # 资源释放
//
// 签名器不依赖终结器，使用完毕后必须调用 Close，Close 会清除内存中的密钥材料。
// 重复调用 Close 是安全的。
//
// 同一个库也以 C 动态库形式提供（cmd/libsigner，头文件 include/signer.h），
// 两者共用同一个句柄注册表。
package signer
