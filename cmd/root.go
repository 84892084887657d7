/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"github.com/mitchellh/go-homedir"
	"github.com/packagewjx/kmeans/internal/config"
	"github.com/packagewjx/kmeans/pkg/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"log"
	"os"
	"strings"
)

const ConfigFlag = "config"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kmeans K [maxIterations]",
	Short: "使用K-Means算法对数据点聚类，并输出K个中心",
	Long: "从标准输入或文件读取数据点，每行一个点，坐标之间使用逗号或空白分隔。\n" +
		"使用前K个点初始化中心，迭代直到收敛或达到最大迭代次数，之后输出K行中心坐标。\n" +
		"不带子命令运行时等同于cluster子命令。",
	Args:          cobra.RangeArgs(1, 2),
	PreRunE:       checkClusterArgs,
	RunE:          runClusterCmd,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.New(os.Stderr, "kmeans: ", log.LstdFlags|log.Lmsgprefix).Println(err)
		fmt.Println(core.UserMessage(err))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, ConfigFlag, "",
		"配置文件（默认为$HOME/.kmeans.yaml）")
	addClusterFlags(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(core.GenericErrorMessage)
			os.Exit(1)
		}

		// Search config in home directory with name ".kmeans" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".kmeans")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.New(os.Stderr, "kmeans: ", log.LstdFlags|log.Lmsgprefix).
			Println("Using config file:", viper.ConfigFileUsed())
	}
}
